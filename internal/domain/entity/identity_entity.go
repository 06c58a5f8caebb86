package entity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultAvatar is used when an identity has no avatar of its own.
const DefaultAvatar = "https://picsum.photos/200"

var (
	ErrProfileRole     = errors.New("health profile is only allowed for USER role")
	ErrMissingProfile  = errors.New("USER role requires a health profile")
	ErrIdentityInvalid = errors.New("invalid identity")
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// HealthProfile is the patient-only part of an identity.
// Known is false for freshly signed-up patients that have not filled the
// profile in yet; the numeric fields are meaningless in that case.
type HealthProfile struct {
	Known     bool     `json:"known"`
	Age       int      `json:"age"`
	HeightCM  float64  `json:"height"`
	WeightKG  float64  `json:"weight"`
	Gender    Gender   `json:"gender"`
	BloodType string   `json:"bloodType"`
	Allergies []string `json:"allergies"`
}

// UnknownHealthProfile is the placeholder profile given to new patients.
func UnknownHealthProfile() *HealthProfile {
	return &HealthProfile{
		Known:     false,
		Gender:    GenderOther,
		BloodType: "Unknown",
		Allergies: []string{},
	}
}

func (p *HealthProfile) Clone() *HealthProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Allergies = slices.Clone(p.Allergies)
	if cp.Allergies == nil {
		cp.Allergies = []string{}
	}
	return &cp
}

// Identity is the authenticated principal of the current session.
// Role is fixed at construction; re-login is the only way to change it.
type Identity struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Role    Role           `json:"role"`
	Avatar  string         `json:"avatar,omitempty"`
	Profile *HealthProfile `json:"profile,omitempty"`
}

// NewIdentity builds an identity and enforces the role/profile pairing.
func NewIdentity(id, name, email string, role Role, avatar string, profile *HealthProfile) (*Identity, error) {
	ident := &Identity{
		ID:      id,
		Name:    name,
		Email:   email,
		Role:    role,
		Avatar:  avatar,
		Profile: profile.Clone(),
	}
	if err := ident.Validate(); err != nil {
		return nil, err
	}
	return ident, nil
}

// Validate checks the invariants; it is also run on rehydrated blobs.
func (i *Identity) Validate() error {
	if i == nil {
		return ErrIdentityInvalid
	}
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrIdentityInvalid)
	}
	if !i.Role.Valid() {
		return fmt.Errorf("%w: %w", ErrIdentityInvalid, ErrUnknownRole)
	}
	switch {
	case i.Role.HasHealthProfile() && i.Profile == nil:
		return ErrMissingProfile
	case !i.Role.HasHealthProfile() && i.Profile != nil:
		return ErrProfileRole
	}
	return nil
}

// AvatarURL returns the avatar or the placeholder.
func (i *Identity) AvatarURL() string {
	if i.Avatar == "" {
		return DefaultAvatar
	}
	return i.Avatar
}

func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	cp := *i
	cp.Profile = i.Profile.Clone()
	return &cp
}

// WithEmail returns a copy carrying a different email.
func (i *Identity) WithEmail(email string) *Identity {
	cp := i.Clone()
	cp.Email = email
	return cp
}
