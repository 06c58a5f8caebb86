// Package memory holds process-local repositories used in local mode and tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/domain/repository"
)

type AccountRepository struct {
	mu       sync.RWMutex
	byEmail  map[string]*entity.Account
	inserted []string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byEmail: make(map[string]*entity.Account)}
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(a.Email)
	if _, ok := r.byEmail[key]; ok {
		return repository.ErrEmailTaken
	}
	cp := *a
	cp.Profile = a.Profile.Clone()
	r.byEmail[key] = &cp
	r.inserted = append(r.inserted, key)
	return nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) ListByRole(ctx context.Context, role entity.Role, limit int) ([]*entity.Account, error) {
	return r.list(func(a *entity.Account) bool { return a.Role == role }, limit), nil
}

func (r *AccountRepository) List(ctx context.Context, limit int) ([]*entity.Account, error) {
	return r.list(func(*entity.Account) bool { return true }, limit), nil
}

// list returns newest first, like the SQL implementation.
func (r *AccountRepository) list(keep func(*entity.Account) bool, limit int) []*entity.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Account, 0, len(r.inserted))
	for i := len(r.inserted) - 1; i >= 0; i-- {
		a := r.byEmail[r.inserted[i]]
		if !keep(a) {
			continue
		}
		cp := *a
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
