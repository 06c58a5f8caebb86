package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, email, role, avatar_url, password_hash, profile, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	profile, err := marshalProfile(a.Profile)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, name, email, role, avatar_url, password_hash, profile)
		VALUES ($1, $2, lower($3), $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, a.ID, a.Name, a.Email, string(a.Role), a.AvatarURL, a.PasswordHash, profile)

	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = lower($1)`, email)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return a, err
}

func (r *AccountRepository) ListByRole(ctx context.Context, role entity.Role, limit int) ([]*entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, string(role), clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

func (r *AccountRepository) List(ctx context.Context, limit int) ([]*entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		ORDER BY created_at DESC
		LIMIT $1
	`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return collectAccounts(rows)
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	var role string
	var profile []byte
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &role, &a.AvatarURL, &a.PasswordHash, &profile,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Role = entity.Role(role)
	if len(profile) > 0 {
		var p entity.HealthProfile
		if err := json.Unmarshal(profile, &p); err != nil {
			return nil, err
		}
		a.Profile = &p
	}
	return a, nil
}

func collectAccounts(rows pgx.Rows) ([]*entity.Account, error) {
	defer rows.Close()
	var out []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func marshalProfile(p *entity.HealthProfile) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
