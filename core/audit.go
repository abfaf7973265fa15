package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PrivacyEventKind identifies a privacy workflow event.
type PrivacyEventKind string

const (
	EventExportRequested     PrivacyEventKind = "export_requested"
	EventExportCompleted     PrivacyEventKind = "export_completed"
	EventDeletionRequested   PrivacyEventKind = "deletion_requested"
	EventDeletionCompleted   PrivacyEventKind = "deletion_completed"
	EventRequestRateLimited  PrivacyEventKind = "request_rate_limited"
	EventNewsletterSubscribe PrivacyEventKind = "newsletter_subscribe"
	EventNewsletterConfirmed PrivacyEventKind = "newsletter_confirmed"
)

// PrivacyEvent is a best-effort, append-only record of a privacy workflow
// step. Intended for operator visibility, not for billing or enforcement.
type PrivacyEvent struct {
	ID         uuid.UUID        `json:"id"`
	OccurredAt time.Time        `json:"occurredAt"`
	Kind       PrivacyEventKind `json:"kind"`
	Email      string           `json:"email,omitempty"`
	ClientIP   string           `json:"clientIp,omitempty"`
	Note       string           `json:"note,omitempty"`
}

// EventLog records privacy events and serves recent history to the admin
// surface. Implementations should be non-blocking and best-effort.
type EventLog interface {
	Record(ctx context.Context, e PrivacyEvent) error
	Recent(ctx context.Context, limit int) ([]PrivacyEvent, error)
}

// RecordEvent stamps and stores an event; failures are swallowed.
func (s *Service) RecordEvent(ctx context.Context, kind PrivacyEventKind, email, clientIP, note string) {
	if s == nil || s.events == nil {
		return
	}
	_ = s.events.Record(ctx, PrivacyEvent{
		ID:         uuid.New(),
		OccurredAt: time.Now().UTC(),
		Kind:       kind,
		Email:      normalizeEmail(email),
		ClientIP:   clientIP,
		Note:       note,
	})
}

// MemoryEventLog keeps the most recent events in a bounded in-process buffer.
// Oldest entries are dropped once the cap is reached.
type MemoryEventLog struct {
	mu     sync.Mutex
	cap    int
	events []PrivacyEvent
}

const defaultEventLogCap = 1000

func NewMemoryEventLog(capacity int) *MemoryEventLog {
	if capacity <= 0 {
		capacity = defaultEventLogCap
	}
	return &MemoryEventLog{cap: capacity}
}

func (l *MemoryEventLog) Record(ctx context.Context, e PrivacyEvent) error {
	_ = ctx
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	if len(l.events) > l.cap {
		l.events = l.events[len(l.events)-l.cap:]
	}
	return nil
}

func (l *MemoryEventLog) Recent(ctx context.Context, limit int) ([]PrivacyEvent, error) {
	_ = ctx
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit <= 0 || limit > len(l.events) {
		limit = len(l.events)
	}
	out := make([]PrivacyEvent, limit)
	// Newest first.
	for i := 0; i < limit; i++ {
		out[i] = l.events[len(l.events)-1-i]
	}
	return out, nil
}
