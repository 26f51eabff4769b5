package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pawar-yoga/studio-backend/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

var errBlankAccessID = errors.New("access id is required")

// Registry is the key/value surface the manager keeps logins in.
// *redis.Client from pkg/redis satisfies it.
type Registry interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// Manager records which admin logins are live. Each entry holds the unix
// time of the login and expires with the token, so logout can revoke a
// token that is still within its lifetime.
type Manager struct {
	registry Registry
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(registry Registry, cfg config.JWTConfig) (*Manager, error) {
	if registry == nil {
		return nil, errors.New("session registry is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &Manager{registry: registry, ttl: ttl, now: time.Now}, nil
}

// Open registers a new admin login and returns its access id.
func (m *Manager) Open(ctx context.Context) (string, error) {
	accessID := NewAccessID()
	opened := strconv.FormatInt(m.clock().Unix(), 10)
	if err := m.registry.Set(ctx, m.registry.AccessSessionKey(accessID), opened, m.ttl); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}
	return accessID, nil
}

func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	key, err := m.key(accessID)
	if err != nil {
		return err
	}
	return m.registry.Del(ctx, key)
}

// HasSession reports whether accessID is still registered. A missing key is
// a normal answer; only store failures are errors.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	key, err := m.key(accessID)
	if err != nil {
		return false, err
	}
	_, err = m.registry.Get(ctx, key)
	switch {
	case errors.Is(err, redislib.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) key(accessID string) (string, error) {
	if strings.TrimSpace(accessID) == "" {
		return "", errBlankAccessID
	}
	return m.registry.AccessSessionKey(accessID), nil
}

func (m *Manager) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// NewAccessID produces the identifier used as the JWT jti and registry key.
func NewAccessID() string {
	return uuid.NewString()
}
