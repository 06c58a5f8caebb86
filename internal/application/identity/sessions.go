package identity

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/pkg/helpers"
	"github.com/oksasatya/smart-health-api/pkg/kvstore"
)

// Sessions hands out one Manager per client session. Every client gets its
// own key space in the shared store, so each still sees exactly one
// StorageKey.
type Sessions struct {
	Backend Backend
	Store   kvstore.Store
	Logger  *logrus.Logger
}

func NewSessions(backend Backend, store kvstore.Store, logger *logrus.Logger) *Sessions {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Sessions{Backend: backend, Store: store, Logger: logger}
}

func ClientPrefix(sessionID string) string { return "client:" + sessionID + ":" }

// Open returns a restored Manager for sessionID.
func (s *Sessions) Open(ctx context.Context, sessionID string) (*Manager, error) {
	m := NewManager(s.Backend, kvstore.Prefixed(s.Store, ClientPrefix(sessionID)), s.Logger)
	if err := m.Restore(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
