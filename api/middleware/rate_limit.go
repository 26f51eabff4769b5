package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pawar-yoga/studio-backend/api/responses"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/redis"
)

// maxPeekBytes bounds how much of a JSON body is buffered to find the keyed field.
const maxPeekBytes = 64 << 10

// RateLimitPolicy defines the throttling parameters for a public form.
// When field is set, the named JSON body field is counted separately from
// the client IP.
type RateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	field      string
	fieldLimit int
}

// NewRateLimitPolicy builds a policy with the supplied window and limits.
func NewRateLimitPolicy(name string, window time.Duration, ipLimit int, field string, fieldLimit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		field:      strings.TrimSpace(field),
		fieldLimit: fieldLimit,
	}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || (p.field != "" && p.fieldLimit > 0))
}

func (p RateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "form"
	}
	return p.name
}

func (p RateLimitPolicy) ipScope(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("%s:ip:%s", p.normalizedName(), ip)
}

func (p RateLimitPolicy) fieldScope(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s:%s", p.normalizedName(), p.field, hash)
}

// RateLimit enforces per-IP and per-field counters on a JSON form endpoint.
// Rejections use the {success:false, message} body of those endpoints.
func RateLimit(policy RateLimitPolicy, limiter redis.RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if policy.ipLimit > 0 {
				if scope := policy.ipScope(ip); scope != "" {
					allowed, count, err := limiter.FixedWindowAllow(ctx, scope, int64(policy.ipLimit), policy.window)
					if err != nil {
						responses.WriteOutcomeError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						respondRateLimited(ctx, logg, w, policy, "ip", ip, count, policy.ipLimit)
						return
					}
				}
			}

			if policy.field != "" && policy.fieldLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
				if err != nil {
					responses.WriteOutcomeError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))

				if value := normalizeValue(extractField(body, policy.field)); value != "" {
					hash := hashValue(value)
					allowed, count, err := limiter.FixedWindowAllow(ctx, policy.fieldScope(hash), int64(policy.fieldLimit), policy.window)
					if err != nil {
						responses.WriteOutcomeError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						respondRateLimited(ctx, logg, w, policy, policy.field, hash, count, policy.fieldLimit)
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy RateLimitPolicy, scope, key string, count int64, limit int) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"key":            key,
			"policy":         policy.normalizedName(),
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "rate_limit.blocked")
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(policy.window.Seconds())))
	responses.WriteOutcomeError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many requests. Please try again later."))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractField(payload []byte, field string) string {
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	value, _ := body[field].(string)
	return value
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
