package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestPrefixedIsolatesClients(t *testing.T) {
	ctx := context.Background()
	backing := NewMemory()
	a := Prefixed(backing, "client:a:")
	b := Prefixed(backing, "client:b:")

	require.NoError(t, a.Set(ctx, "health_app_user", "alice"))
	require.NoError(t, b.Set(ctx, "health_app_user", "bob"))

	v, ok, err := a.Get(ctx, "health_app_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", v)

	raw, ok, _ := backing.Get(ctx, "client:b:health_app_user")
	require.True(t, ok)
	assert.Equal(t, "bob", raw)

	require.NoError(t, a.Delete(ctx, "health_app_user"))
	_, ok, _ = b.Get(ctx, "health_app_user")
	assert.True(t, ok)
	assert.Equal(t, 1, backing.Len())
}
