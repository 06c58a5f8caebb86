// Package identity owns the live identity of one client session: login,
// signup, logout and rehydration from the persisted session blob.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
	"github.com/oksasatya/smart-health-api/pkg/kvstore"
)

// StorageKey is the key the serialized identity lives under.
const StorageKey = "health_app_user"

var (
	ErrInvalidInput = errors.New("invalid login input")
	ErrPersist      = errors.New("persist session failed")
)

// Manager holds at most one live identity. It is safe for concurrent use,
// though callers normally drive it from a single request at a time.
type Manager struct {
	backend Backend
	store   kvstore.Store
	logger  *logrus.Logger

	mu      sync.RWMutex
	current *entity.Identity
}

func NewManager(backend Backend, store kvstore.Store, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Manager{backend: backend, store: store, logger: logger}
}

// Restore rehydrates the live identity from the store. A missing blob means
// logged out. A blob that does not decode or validate is removed and the
// manager stays logged out.
func (m *Manager) Restore(ctx context.Context) error {
	raw, ok, err := m.store.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !ok {
		m.current = nil
		return nil
	}
	var ident entity.Identity
	if err := json.Unmarshal([]byte(raw), &ident); err == nil {
		err = ident.Validate()
		if err == nil {
			m.current = &ident
			return nil
		}
		m.logger.WithError(err).Warn("discarding invalid session blob")
	} else {
		m.logger.WithError(err).Warn("discarding undecodable session blob")
	}
	m.current = nil
	if dErr := m.store.Delete(ctx, StorageKey); dErr != nil {
		m.logger.WithError(dErr).Warn("delete invalid session blob failed")
	}
	return nil
}

// Login resolves email and role through the backend and makes the result
// the live identity. The password is intentionally not part of the call.
func (m *Manager) Login(ctx context.Context, email string, role entity.Role) (*entity.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || !role.Valid() {
		return nil, ErrInvalidInput
	}
	ident, err := m.backend.Login(ctx, email, role)
	if err != nil {
		return nil, err
	}
	if err := m.commit(ctx, ident); err != nil {
		return nil, err
	}
	m.logger.WithFields(logrus.Fields{"user_id": ident.ID, "role": ident.Role}).Info("login")
	return ident.Clone(), nil
}

func (m *Manager) Signup(ctx context.Context, in SignupInput) (*entity.Identity, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || !in.Role.Valid() {
		return nil, ErrInvalidInput
	}
	ident, err := m.backend.Signup(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := m.commit(ctx, ident); err != nil {
		return nil, err
	}
	m.logger.WithFields(logrus.Fields{"user_id": ident.ID, "role": ident.Role}).Info("signup")
	return ident.Clone(), nil
}

// Logout always clears the in-memory identity; a failure to remove the
// persisted copy is returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	if err := m.store.Delete(ctx, StorageKey); err != nil {
		m.logger.WithError(err).Error("delete session blob failed")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// Current returns a copy of the live identity.
func (m *Manager) Current() (*entity.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, false
	}
	return m.current.Clone(), true
}

// commit persists ident and then swaps it in. Nothing changes if the
// write fails.
func (m *Manager) commit(ctx context.Context, ident *entity.Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(ident)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Set(ctx, StorageKey, string(b)); err != nil {
		m.logger.WithError(err).Error("persist session blob failed")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	m.current = ident.Clone()
	return nil
}
