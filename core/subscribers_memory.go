package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySubscriberStore is an in-process SubscriberStore for development and
// tests. It lives here rather than in storage/memory so the ephemeral KV
// package stays free of domain types.
type MemorySubscriberStore struct {
	mu   sync.Mutex
	rows map[string]*Subscriber // keyed by lowercased email
}

func NewMemorySubscriberStore() *MemorySubscriberStore {
	return &MemorySubscriberStore{rows: make(map[string]*Subscriber)}
}

func (s *MemorySubscriberStore) UpsertPending(ctx context.Context, email string) (*Subscriber, error) {
	_ = ctx
	email = normalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.rows[email]; ok {
		sub.DeletedAt = nil
		sub.DeleteReason = nil
		cp := *sub
		return &cp, nil
	}
	sub := &Subscriber{
		ID:           uuid.New(),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	}
	s.rows[email] = sub
	cp := *sub
	return &cp, nil
}

func (s *MemorySubscriberStore) ConfirmSubscription(ctx context.Context, email string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.rows[normalizeEmail(email)]
	if !ok || sub.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	sub.Confirmed = true
	sub.ConfirmedAt = &now
	return nil
}

func (s *MemorySubscriberStore) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.rows[normalizeEmail(email)]
	if !ok || sub.DeletedAt != nil {
		return nil, ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *MemorySubscriberStore) SoftDelete(ctx context.Context, email, reason string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.rows[normalizeEmail(email)]
	if !ok || sub.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now().UTC()
	sub.DeletedAt = &now
	if reason != "" {
		sub.DeleteReason = &reason
	}
	return nil
}

func (s *MemorySubscriberStore) Unsubscribe(ctx context.Context, email string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.rows[normalizeEmail(email)]; ok && sub.DeletedAt == nil {
		sub.Confirmed = false
	}
	return nil
}

func (s *MemorySubscriberStore) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for _, sub := range s.rows {
		if sub.DeletedAt != nil && sub.DeletedAt.Before(cutoff) {
			out = append(out, sub.ID)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemorySubscriberStore) HardDelete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, sub := range s.rows {
		if sub.ID == id {
			delete(s.rows, email)
			return nil
		}
	}
	return nil
}
