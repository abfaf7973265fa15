package memorystore

import (
	"context"
	"sync"
	"time"
)

type kvItem struct {
	value   []byte
	expires time.Time
}

// KV is a simple in-memory key-value store with TTL support.
// It is only safe for single-process deployments.
type KV struct {
	mu    sync.Mutex
	items map[string]kvItem
}

func NewKV() *KV {
	return &KV{items: make(map[string]kvItem)}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	k.mu.Lock()
	defer k.mu.Unlock()
	it, ok := k.live(key)
	if !ok {
		return nil, false, nil
	}
	return it.value, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_ = ctx
	k.mu.Lock()
	defer k.mu.Unlock()
	k.items[key] = kvItem{value: append([]byte(nil), value...), expires: expiry(ttl)}
	return nil
}

func (k *KV) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	_ = ctx
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.live(key); ok {
		return false, nil
	}
	k.items[key] = kvItem{value: append([]byte(nil), value...), expires: expiry(ttl)}
	return true, nil
}

// Consume reads and deletes under a single lock hold, so concurrent callers
// see exactly one winner.
func (k *KV) Consume(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	k.mu.Lock()
	defer k.mu.Unlock()
	it, ok := k.live(key)
	if !ok {
		return nil, false, nil
	}
	delete(k.items, key)
	return it.value, true, nil
}

func (k *KV) Del(ctx context.Context, key string) error {
	_ = ctx
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.items, key)
	return nil
}

// live returns the item if present and unexpired; expired entries are
// dropped so they become indistinguishable from missing ones.
// Callers must hold the lock.
func (k *KV) live(key string) (kvItem, bool) {
	it, ok := k.items[key]
	if !ok {
		return kvItem{}, false
	}
	if !it.expires.IsZero() && time.Now().After(it.expires) {
		delete(k.items, key)
		return kvItem{}, false
	}
	return it, true
}

func expiry(ttl time.Duration) time.Time {
	if ttl > 0 {
		return time.Now().Add(ttl)
	}
	return time.Time{}
}
