package memorylimiter

import (
	"context"
	"sync"
	"time"

	"github.com/JNZader/portfolio-2025-sub001/ratelimit"
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window counter limiter held in process memory.
// It is only suitable for single-process deployments.
type Limiter struct {
	mu      sync.Mutex
	limits  map[string]ratelimit.Limit
	windows map[string]*window
}

func New(limits map[string]ratelimit.Limit) *Limiter {
	return &Limiter{limits: limits, windows: make(map[string]*window)}
}

// AllowNamed counts one attempt against the bucket's limit for the key.
// Unknown buckets fall back to the "default" bucket; if neither exists the
// attempt is allowed uncounted.
func (l *Limiter) AllowNamed(ctx context.Context, bucket, key string) (ratelimit.Decision, error) {
	_ = ctx
	lim, ok := l.limits[bucket]
	if !ok {
		lim, ok = l.limits["default"]
		if !ok {
			return ratelimit.Decision{Allowed: true}, nil
		}
	}

	// Counters are scoped per bucket: the same key in two buckets never
	// shares a window.
	wk := bucket + "|" + key

	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	w, ok := l.windows[wk]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(lim.Window)}
		l.windows[wk] = w
	}
	w.count++

	remaining := lim.Limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return ratelimit.Decision{
		Allowed:   w.count <= lim.Limit,
		Remaining: remaining,
		ResetAt:   w.resetAt,
	}, nil
}
