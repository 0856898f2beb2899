package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sweetquest/sweetquest-backend/pkg/config"
	"github.com/sweetquest/sweetquest-backend/pkg/redis"
)

// AccessSessionChecker verifies a token's jti maps to a live session.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, jti string) (bool, error)
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(jti string) string
}

// Manager tracks admin sessions in Redis keyed by token jti, so a logout
// revokes the token before its JWT expiry.
type Manager struct {
	store sessionStore
	ttl   time.Duration
}

// NewManager builds a session manager bound to the redis client.
func NewManager(store sessionStore, cfg config.JWTConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Create registers a session for the given jti.
func (m *Manager) Create(ctx context.Context, jti string) error {
	if jti == "" {
		return fmt.Errorf("jti is required")
	}
	return m.store.Set(ctx, m.store.SessionKey(jti), "1", m.ttl)
}

// HasSession reports whether the jti still maps to a live session.
func (m *Manager) HasSession(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.store.SessionKey(jti))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke removes the session for the given jti.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	return m.store.Del(ctx, m.store.SessionKey(jti))
}
