package redislimiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JNZader/portfolio-2025-sub001/ratelimit"
)

// Limiter is a fixed-window counter limiter on Redis, shared across
// processes. Each window is one INCR key with an expiry set on first hit.
type Limiter struct {
	rdb    *redis.Client
	limits map[string]ratelimit.Limit
}

func New(rdb *redis.Client, limits map[string]ratelimit.Limit) *Limiter {
	return &Limiter{rdb: rdb, limits: limits}
}

// AllowNamed counts one attempt against the bucket's limit for the key.
// The INCR/EXPIRE pair runs in one pipeline, so concurrent callers across
// processes share a consistent counter. Errors are returned to the caller;
// the policy decision (fail open vs closed) belongs there.
func (l *Limiter) AllowNamed(ctx context.Context, bucket, key string) (ratelimit.Decision, error) {
	lim, ok := l.limits[bucket]
	if !ok {
		lim, ok = l.limits["default"]
		if !ok {
			return ratelimit.Decision{Allowed: true}, nil
		}
	}

	// Counters are scoped per bucket: the same key in two buckets never
	// shares a window.
	rk := "rl:" + bucket + ":" + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, rk)
	pipe.ExpireNX(ctx, rk, lim.Window)
	ttl := pipe.TTL(ctx, rk)
	if _, err := pipe.Exec(ctx); err != nil {
		return ratelimit.Decision{}, err
	}

	count := int(incr.Val())
	remaining := lim.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	resetAt := time.Now().Add(lim.Window)
	if d := ttl.Val(); d > 0 {
		resetAt = time.Now().Add(d)
	}
	return ratelimit.Decision{
		Allowed:   count <= lim.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
