package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pawar-yoga/studio-backend/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func TestManagerOpenAndRevoke(t *testing.T) {
	store := newMockStore()
	opened := time.Unix(1700000000, 0)
	manager := &Manager{registry: store, ttl: time.Hour, now: func() time.Time { return opened }}
	ctx := context.Background()

	accessID, err := manager.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := store.ttls[store.AccessSessionKey(accessID)]; got != time.Hour {
		t.Fatalf("expected ttl of 1h, got %v", got)
	}
	if got := store.data[store.AccessSessionKey(accessID)]; got != "1700000000" {
		t.Fatalf("expected login time as value, got %q", got)
	}

	ok, err := manager.HasSession(ctx, accessID)
	if err != nil || !ok {
		t.Fatalf("expected active session, got ok=%v err=%v", ok, err)
	}

	if err := manager.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = manager.HasSession(ctx, accessID)
	if err != nil || ok {
		t.Fatalf("expected revoked session, got ok=%v err=%v", ok, err)
	}
}

func TestManagerRejectsBlankAccessID(t *testing.T) {
	store := newMockStore()
	manager := &Manager{registry: store, ttl: time.Hour}

	if _, err := manager.HasSession(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank access id")
	}
	if err := manager.Revoke(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank access id")
	}
}

func TestManagerSurfacesStoreErrors(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("connection refused")
	manager := &Manager{registry: store, ttl: time.Hour}

	if _, err := manager.Open(context.Background()); err == nil {
		t.Fatal("expected open to fail")
	}
	if _, err := manager.HasSession(context.Background(), "abc"); err == nil {
		t.Fatal("expected lookup to fail")
	}
}

func TestNewManagerValidatesInputs(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{ExpirationMinutes: 5}); err == nil {
		t.Fatal("expected nil registry to fail")
	}
	if _, err := NewManager(newMockStore(), config.JWTConfig{}); err == nil {
		t.Fatal("expected zero ttl to fail")
	}
	manager, err := NewManager(newMockStore(), config.JWTConfig{ExpirationMinutes: 5})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if manager.TTL() != 5*time.Minute {
		t.Fatalf("expected 5m ttl, got %v", manager.TTL())
	}
}
