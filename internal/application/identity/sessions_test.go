package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/pkg/kvstore"
)

func TestSessionsAreIsolatedPerClient(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	s := NewSessions(NewTemplateBackend(0, 0), store, nil)

	a, err := s.Open(ctx, "client-a")
	require.NoError(t, err)
	_, err = a.Login(ctx, "a@x.com", entity.RoleDoctor)
	require.NoError(t, err)

	b, err := s.Open(ctx, "client-b")
	require.NoError(t, err)
	assert.False(t, b.IsAuthenticated())

	again, err := s.Open(ctx, "client-a")
	require.NoError(t, err)
	cur, ok := again.Current()
	require.True(t, ok)
	assert.Equal(t, entity.RoleDoctor, cur.Role)

	_, ok, _ = store.Get(ctx, ClientPrefix("client-a")+StorageKey)
	assert.True(t, ok)
}
