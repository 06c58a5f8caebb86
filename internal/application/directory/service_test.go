package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/infrastructure/memory"
	"github.com/oksasatya/smart-health-api/internal/infrastructure/search"
)

type stubSearcher struct {
	docs []search.AccountDoc
	err  error
}

func (s *stubSearcher) Search(context.Context, string, entity.Role, int) ([]search.AccountDoc, error) {
	return s.docs, s.err
}

func seeded(t *testing.T) *memory.AccountRepository {
	t.Helper()
	r := memory.NewAccountRepository()
	accs := []*entity.Account{
		{ID: "u1", Name: "Alex Johnson", Email: "alex@example.com", Role: entity.RoleUser, PasswordHash: "h", Profile: &entity.HealthProfile{Known: true, Age: 24}},
		{ID: "d1", Name: "Dr. Sarah Smith", Email: "sarah@hospital.com", Role: entity.RoleDoctor},
		{ID: "a1", Name: "System Admin", Email: "admin@sys.com", Role: entity.RoleAdmin},
	}
	for _, a := range accs {
		a.CreatedAt = time.Now()
		require.NoError(t, r.Create(context.Background(), a))
	}
	return r
}

func TestListPatientsOnlyUsers(t *testing.T) {
	s := NewService(seeded(t), nil, nil)
	got, err := s.ListPatients(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)
	require.NotNil(t, got[0].Profile)
	assert.Equal(t, 24, got[0].Profile.Age)
}

func TestListUsersNewestFirst(t *testing.T) {
	s := NewService(seeded(t), nil, nil)
	got, err := s.ListUsers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "d1", got[1].ID)
}

func TestSearchUsesIndex(t *testing.T) {
	idx := &stubSearcher{docs: []search.AccountDoc{{ID: "d1", Name: "Dr. Sarah Smith", Role: entity.RoleDoctor}}}
	s := NewService(seeded(t), idx, nil)
	got, err := s.SearchUsers(context.Background(), "sarah", "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}

func TestSearchFallsBackToRepository(t *testing.T) {
	s := NewService(seeded(t), &stubSearcher{err: errors.New("es down")}, nil)
	got, err := s.SearchUsers(context.Background(), "HOSPITAL", "", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)

	got, err = NewService(seeded(t), nil, nil).SearchUsers(context.Background(), "", entity.RoleAdmin, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}
