package core

import (
	"context"
	"encoding/json"
	"time"
)

type EphemeralMode string

const (
	EphemeralMemory EphemeralMode = "memory"
	EphemeralRedis  EphemeralMode = "redis"
)

// EphemeralStore is a minimal TTL key-value interface used for short-lived
// verification state. Implementations must honor TTL on Set/SetNX, treat
// missing keys as (found=false, err=nil), and make Consume an atomic
// read-and-delete so that concurrent callers see exactly one winner.
type EphemeralStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores the value only if the key does not already exist and
	// reports whether the write happened.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Consume atomically reads and deletes the key.
	Consume(ctx context.Context, key string) ([]byte, bool, error)
	Del(ctx context.Context, key string) error
}

func (s *Service) WithEphemeralStore(store EphemeralStore, mode EphemeralMode) *Service {
	if mode == "" {
		mode = EphemeralMemory
	}
	s.ephemeralStore = store
	s.ephemeralMode = mode
	return s
}

func (s *Service) EphemeralMode() EphemeralMode {
	if s == nil || s.ephemeralMode == "" {
		return EphemeralMemory
	}
	return s.ephemeralMode
}

func (s *Service) useEphemeralStore() bool {
	return s != nil && s.ephemeralStore != nil
}

func (s *Service) ephemPutJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !s.useEphemeralStore() {
		return ErrStoreUnavailable
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ok, err := s.ephemeralStore.SetNX(ctx, key, b, ttl)
	if err != nil {
		return err
	}
	if !ok {
		// A collision on 24 bytes of entropy means something is wrong;
		// never silently overwrite an existing payload.
		return ErrStoreUnavailable
	}
	return nil
}

func (s *Service) ephemConsumeJSON(ctx context.Context, key string, out any) (bool, error) {
	if !s.useEphemeralStore() {
		return false, ErrStoreUnavailable
	}
	b, ok, err := s.ephemeralStore.Consume(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return true, json.Unmarshal(b, out)
}

func (s *Service) ephemGetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !s.useEphemeralStore() {
		return false, ErrStoreUnavailable
	}
	b, ok, err := s.ephemeralStore.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	return true, json.Unmarshal(b, out)
}
