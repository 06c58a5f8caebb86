package assistant

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/pkg/helpers"
)

var ErrConversationNotFound = errors.New("conversation not found")

// DefaultMaxPerOwner bounds how many open conversations one owner keeps.
const DefaultMaxPerOwner = 5

// Registry keeps the open conversations of each owner in memory. Nothing
// here is persisted: closing a conversation, or restarting the process,
// discards it together with its chat handle.
type Registry struct {
	gen         Generator
	logger      *logrus.Logger
	maxPerOwner int

	mu      sync.Mutex
	byOwner map[string]*ownerConversations
}

type ownerConversations struct {
	order []string
	byID  map[string]*Conversation
}

func NewRegistry(gen Generator, logger *logrus.Logger, maxPerOwner int) *Registry {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	if maxPerOwner <= 0 {
		maxPerOwner = DefaultMaxPerOwner
	}
	return &Registry{
		gen:         gen,
		logger:      logger,
		maxPerOwner: maxPerOwner,
		byOwner:     make(map[string]*ownerConversations),
	}
}

// Open starts a fresh conversation for owner, evicting the owner's oldest
// one when the limit is reached.
func (r *Registry) Open(ctx context.Context, owner string) *Conversation {
	conv := New(ctx, r.gen, r.logger)

	r.mu.Lock()
	defer r.mu.Unlock()
	oc, ok := r.byOwner[owner]
	if !ok {
		oc = &ownerConversations{byID: make(map[string]*Conversation)}
		r.byOwner[owner] = oc
	}
	for len(oc.order) >= r.maxPerOwner {
		oldest := oc.order[0]
		oc.order = oc.order[1:]
		delete(oc.byID, oldest)
		r.logger.WithFields(logrus.Fields{"owner": owner, "conversation_id": oldest}).Debug("evicted conversation")
	}
	oc.order = append(oc.order, conv.ID())
	oc.byID[conv.ID()] = conv
	return conv
}

func (r *Registry) Get(owner, id string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oc, ok := r.byOwner[owner]
	if !ok {
		return nil, ErrConversationNotFound
	}
	conv, ok := oc.byID[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (r *Registry) Close(owner, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	oc, ok := r.byOwner[owner]
	if !ok {
		return ErrConversationNotFound
	}
	if _, ok := oc.byID[id]; !ok {
		return ErrConversationNotFound
	}
	delete(oc.byID, id)
	for i, v := range oc.order {
		if v == id {
			oc.order = append(oc.order[:i], oc.order[i+1:]...)
			break
		}
	}
	if len(oc.order) == 0 {
		delete(r.byOwner, owner)
	}
	return nil
}

// CloseAll drops every conversation of owner, e.g. on logout.
func (r *Registry) CloseAll(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byOwner, owner)
}
