package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOpenAndGet(t *testing.T) {
	r := NewRegistry(&stubGenerator{handle: &scriptedHandle{reply: "ok"}}, nil, 0)
	conv := r.Open(context.Background(), "u1")

	got, err := r.Get("u1", conv.ID())
	require.NoError(t, err)
	assert.Same(t, conv, got)

	_, err = r.Get("u2", conv.ID())
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestRegistryCloseDiscardsConversation(t *testing.T) {
	r := NewRegistry(&stubGenerator{handle: &scriptedHandle{}}, nil, 0)
	conv := r.Open(context.Background(), "u1")

	require.NoError(t, r.Close("u1", conv.ID()))
	_, err := r.Get("u1", conv.ID())
	assert.ErrorIs(t, err, ErrConversationNotFound)
	assert.ErrorIs(t, r.Close("u1", conv.ID()), ErrConversationNotFound)
}

func TestRegistryEvictsOldest(t *testing.T) {
	r := NewRegistry(&stubGenerator{handle: &scriptedHandle{}}, nil, 2)
	first := r.Open(context.Background(), "u1")
	second := r.Open(context.Background(), "u1")
	third := r.Open(context.Background(), "u1")

	_, err := r.Get("u1", first.ID())
	assert.ErrorIs(t, err, ErrConversationNotFound)
	for _, c := range []*Conversation{second, third} {
		_, err := r.Get("u1", c.ID())
		assert.NoError(t, err)
	}
}

func TestRegistryCloseAll(t *testing.T) {
	r := NewRegistry(&stubGenerator{handle: &scriptedHandle{}}, nil, 0)
	a := r.Open(context.Background(), "u1")
	b := r.Open(context.Background(), "u2")

	r.CloseAll("u1")
	_, err := r.Get("u1", a.ID())
	assert.ErrorIs(t, err, ErrConversationNotFound)
	_, err = r.Get("u2", b.ID())
	assert.NoError(t, err)
}
