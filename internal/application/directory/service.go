// Package directory serves the account lists that admins and doctors see.
package directory

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	repo "github.com/oksasatya/smart-health-api/internal/domain/repository"
	"github.com/oksasatya/smart-health-api/internal/infrastructure/search"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
)

const (
	DefaultLimit      = 50
	DefaultSearchSize = 10
	MaxSearchSize     = 50
)

// Entry is an account as shown in lists. Password hashes never leave the
// repository layer.
type Entry struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Role      entity.Role           `json:"role"`
	AvatarURL string                `json:"avatar_url"`
	Profile   *entity.HealthProfile `json:"profile,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// Searcher is the full-text account index.
type Searcher interface {
	Search(ctx context.Context, q string, role entity.Role, size int) ([]search.AccountDoc, error)
}

type Service struct {
	Accounts repo.AccountRepository
	Search   Searcher
	Logger   *logrus.Logger
}

func NewService(accounts repo.AccountRepository, searcher Searcher, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Service{Accounts: accounts, Search: searcher, Logger: logger}
}

func (s *Service) ListUsers(ctx context.Context, limit int) ([]Entry, error) {
	accs, err := s.Accounts.List(ctx, limitOr(limit, DefaultLimit))
	if err != nil {
		return nil, err
	}
	return entries(accs), nil
}

// ListPatients returns USER accounts with their health profiles.
func (s *Service) ListPatients(ctx context.Context, limit int) ([]Entry, error) {
	accs, err := s.Accounts.ListByRole(ctx, entity.RoleUser, limitOr(limit, DefaultLimit))
	if err != nil {
		return nil, err
	}
	return entries(accs), nil
}

// SearchUsers queries the index and falls back to scanning the repository
// when no index is configured or the index fails.
func (s *Service) SearchUsers(ctx context.Context, q string, role entity.Role, size int) ([]Entry, error) {
	q = strings.TrimSpace(q)
	if size <= 0 || size > MaxSearchSize {
		size = DefaultSearchSize
	}
	if s.Search != nil && q != "" {
		docs, err := s.Search.Search(ctx, q, role, size)
		if err == nil {
			out := make([]Entry, 0, len(docs))
			for _, d := range docs {
				out = append(out, Entry{ID: d.ID, Name: d.Name, Email: d.Email, Role: d.Role, AvatarURL: d.AvatarURL, CreatedAt: d.CreatedAt})
			}
			return out, nil
		}
		s.Logger.WithError(err).Warn("account search failed, scanning repository")
	}
	return s.scan(ctx, q, role, size)
}

func (s *Service) scan(ctx context.Context, q string, role entity.Role, size int) ([]Entry, error) {
	var (
		accs []*entity.Account
		err  error
	)
	if role != "" {
		accs, err = s.Accounts.ListByRole(ctx, role, 0)
	} else {
		accs, err = s.Accounts.List(ctx, 0)
	}
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(q)
	out := make([]Entry, 0, size)
	for _, a := range accs {
		if q != "" && !strings.Contains(strings.ToLower(a.Name), q) && !strings.Contains(strings.ToLower(a.Email), q) {
			continue
		}
		out = append(out, entry(a))
		if len(out) == size {
			break
		}
	}
	return out, nil
}

func entries(accs []*entity.Account) []Entry {
	out := make([]Entry, 0, len(accs))
	for _, a := range accs {
		out = append(out, entry(a))
	}
	return out
}

func entry(a *entity.Account) Entry {
	return Entry{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		AvatarURL: a.AvatarURL,
		Profile:   a.Profile.Clone(),
		CreatedAt: a.CreatedAt,
	}
}

func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
