package identity

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	repo "github.com/oksasatya/smart-health-api/internal/domain/repository"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
)

// AccountIndexer makes accounts searchable by admins.
type AccountIndexer interface {
	IndexAccount(ctx context.Context, a *entity.Account) error
}

// WelcomeNotifier is told about every new signup.
type WelcomeNotifier interface {
	NotifyWelcome(ctx context.Context, ident *entity.Identity) error
}

// DirectoryBackend records signups in the account directory on top of
// another Backend. Every directory side effect is best effort: a signup
// that the inner backend accepted is never failed by them.
type DirectoryBackend struct {
	Inner    Backend
	Accounts repo.AccountRepository
	Index    AccountIndexer
	Notifier WelcomeNotifier
	Logger   *logrus.Logger

	hash func(string) (string, error)
}

func NewDirectoryBackend(inner Backend, accounts repo.AccountRepository, index AccountIndexer, notifier WelcomeNotifier, logger *logrus.Logger) *DirectoryBackend {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &DirectoryBackend{
		Inner:    inner,
		Accounts: accounts,
		Index:    index,
		Notifier: notifier,
		Logger:   logger,
		hash:     helpers.HashPassword,
	}
}

func (d *DirectoryBackend) Login(ctx context.Context, email string, role entity.Role) (*entity.Identity, error) {
	return d.Inner.Login(ctx, email, role)
}

func (d *DirectoryBackend) Signup(ctx context.Context, in SignupInput) (*entity.Identity, error) {
	ident, err := d.Inner.Signup(ctx, in)
	if err != nil {
		return nil, err
	}
	log := d.Logger.WithFields(logrus.Fields{"user_id": ident.ID, "role": ident.Role})

	var hash string
	if in.Password != "" {
		if hash, err = d.hash(in.Password); err != nil {
			log.WithError(err).Warn("hash signup password failed")
		}
	}
	acc := entity.AccountFromIdentity(ident, hash)
	acc.CreatedAt = time.Now().UTC()
	acc.UpdatedAt = acc.CreatedAt

	if d.Accounts != nil {
		if err := d.Accounts.Create(ctx, acc); err != nil {
			log.WithError(err).Warn("record account failed")
		}
	}
	if d.Index != nil {
		if err := d.Index.IndexAccount(ctx, acc); err != nil {
			log.WithError(err).Warn("index account failed")
		}
	}
	if d.Notifier != nil {
		if err := d.Notifier.NotifyWelcome(ctx, ident); err != nil {
			log.WithError(err).Warn("enqueue welcome email failed")
		}
	}
	return ident, nil
}
