package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReportsEachComponent(t *testing.T) {
	s := NewStatus("offline", time.Second)
	s.Register("redis", func(context.Context) error { return nil })
	s.Register("postgres", func(context.Context) error { return errors.New("connection refused") })

	r := s.Check(context.Background())
	assert.False(t, r.Healthy)
	assert.Equal(t, "offline", r.Generator)
	require.Len(t, r.Components, 2)
	assert.Equal(t, "postgres", r.Components[0].Name)
	assert.Equal(t, "connection refused", r.Components[0].Error)
	assert.True(t, r.Components[1].Healthy)
}

func TestCheckHonoursTimeout(t *testing.T) {
	s := NewStatus("gemini", 10*time.Millisecond)
	s.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	r := s.Check(context.Background())
	require.Len(t, r.Components, 1)
	assert.False(t, r.Components[0].Healthy)
}

func TestCheckWithNothingRegistered(t *testing.T) {
	r := NewStatus("gemini", 0).Check(context.Background())
	assert.True(t, r.Healthy)
	assert.Empty(t, r.Components)
}
