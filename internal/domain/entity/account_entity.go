package entity

import (
	"time"
)

// Account is the directory record written when someone signs up.
// PasswordHash is a bcrypt hash; sessions never check it.
type Account struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	AvatarURL    string
	PasswordHash string
	Profile      *HealthProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountFromIdentity copies the public part of an identity into an account.
func AccountFromIdentity(i *Identity, passwordHash string) *Account {
	return &Account{
		ID:           i.ID,
		Name:         i.Name,
		Email:        i.Email,
		Role:         i.Role,
		AvatarURL:    i.AvatarURL(),
		PasswordHash: passwordHash,
		Profile:      i.Profile.Clone(),
	}
}
