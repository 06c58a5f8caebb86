package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// AccountRepository stores the directory of signed-up accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	ListByRole(ctx context.Context, role entity.Role, limit int) ([]*entity.Account, error)
	List(ctx context.Context, limit int) ([]*entity.Account, error)
}
