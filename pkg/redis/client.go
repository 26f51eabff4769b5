package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pawar-yoga/studio-backend/pkg/config"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
)

const (
	keyNamespace    = "yoga"
	rateLimitPrefix = "rate_limit"
	sessionPrefix   = "session"
)

var errNotInitialized = errors.New("redis client not initialized")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Incr(context.Context, string) *redis.IntCmd
	ExpireNX(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client holds admin session markers and form rate-limit counters.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// RateLimiter counts hits per scope in fixed windows.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// New connects to redis and fails when the server does not answer a ping.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{"redis_addr": opts.Addr, "redis_db": opts.DB}), "redis connection established")
	}
	return &Client{store: raw, raw: raw}, nil
}

// optionsFromConfig prefers the URL form; explicit settings fill whatever
// the URL leaves unset.
func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
		if opts.DB == 0 {
			opts.DB = cfg.DB
		}
	case cfg.Address != "":
		opts = &redis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB}
	default:
		return nil, errors.New("redis url or address is required")
	}

	setIfZero(&opts.PoolSize, cfg.PoolSize)
	setIfZero(&opts.MinIdleConns, cfg.MinIdleConns)
	setIfZero(&opts.DialTimeout, cfg.DialTimeout)
	setIfZero(&opts.ReadTimeout, cfg.ReadTimeout)
	setIfZero(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func setIfZero[T comparable](dst *T, value T) {
	var zero T
	if *dst == zero {
		*dst = value
	}
}

// Set stores value under key. A zero ttl keeps it forever.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get returns the value at key, or redis.Nil when it is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errNotInitialized
	}
	return c.store.Get(ctx, key).Result()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Del(ctx, keys...).Err()
}

// FixedWindowAllow counts one hit for scope and reports whether the count
// is still within limit. The window starts at the first hit; the expiry is
// re-asserted on every hit so a lost EXPIRE cannot pin a counter forever.
func (c *Client) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if c.store == nil {
		return false, 0, errNotInitialized
	}
	key := c.RateLimitKey(scope)
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if window > 0 {
		if err := c.store.ExpireNX(ctx, key, window).Err(); err != nil {
			return false, count, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count <= limit, count, nil
}

// RateLimitKey namespaces a rate limit scope.
func (c *Client) RateLimitKey(scope string) string {
	return c.buildKey(rateLimitPrefix, scope)
}

// AccessSessionKey namespaces an admin login session.
func (c *Client) AccessSessionKey(accessID string) string {
	return c.buildKey(sessionPrefix, "admin", accessID)
}

func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errNotInitialized
	}
	return c.store.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(parts ...string) string {
	key := []string{keyNamespace}
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			key = append(key, part)
		}
	}
	return strings.Join(key, ":")
}
