package privacyhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/JNZader/portfolio-2025-sub001/ratelimit"
)

// RateLimiter is the minimal limiter surface used by the handlers.
type RateLimiter interface {
	AllowNamed(ctx context.Context, bucket, key string) (ratelimit.Decision, error)
}

// allow counts one attempt for the request against the named bucket.
//
// Limiter errors FAIL CLOSED: the caller receives the error and must reject
// the request with a server error rather than let an unreachable store turn
// the quota off.
func (s *Service) allow(r *http.Request, bucket string) (ratelimit.Decision, error) {
	if s == nil || s.rl == nil {
		return ratelimit.Decision{Allowed: true}, nil
	}
	return s.rl.AllowNamed(r.Context(), bucket, "ip:"+s.ip(r))
}

// retryHint turns a window reset into the human-readable guidance the 429
// body carries.
func retryHint(resetAt time.Time) string {
	until := time.Until(resetAt)
	switch {
	case until > 6*time.Hour:
		return "Try again tomorrow."
	case until > 90*time.Minute:
		return "Try again in a few hours."
	case until > 45*time.Minute:
		return "Try again in about an hour."
	case until > time.Minute:
		return "Try again in a few minutes."
	default:
		return "Try again in a minute."
	}
}
