package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter subscriber record, the user data that export
// and erasure act upon.
type Subscriber struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Confirmed    bool       `json:"confirmed"`
	SubscribedAt time.Time  `json:"subscribedAt"`
	ConfirmedAt  *time.Time `json:"confirmedAt,omitempty"`
	DeletedAt    *time.Time `json:"-"`
	DeleteReason *string    `json:"-"`
}

// SubscriberStore is the persistence boundary for subscriber records.
// Implementations return ErrNotFound where documented and are safe for
// concurrent use.
type SubscriberStore interface {
	// UpsertPending creates a subscriber in unconfirmed state, or returns
	// the existing record for the email (resurrecting a soft-deleted row).
	UpsertPending(ctx context.Context, email string) (*Subscriber, error)
	// ConfirmSubscription marks the subscriber confirmed. ErrNotFound if no
	// live record exists for the email.
	ConfirmSubscription(ctx context.Context, email string) error
	// GetByEmail returns the live (not soft-deleted) record. ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	// SoftDelete marks the record deleted with an optional free-text reason.
	// ErrNotFound if no live record exists.
	SoftDelete(ctx context.Context, email, reason string) error
	// Unsubscribe removes the email from active delivery. Absent records are
	// not an error: the operation is deliberately indistinguishable either way.
	Unsubscribe(ctx context.Context, email string) error
	// ListDeletedBefore returns IDs of records soft-deleted before the cutoff,
	// for retention purge workflows.
	ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
	// HardDelete permanently removes the record.
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// ListSubscribersDeletedBefore exposes the retention listing for purge jobs.
func (s *Service) ListSubscribersDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	if s.subscribers == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 500
	}
	return s.subscribers.ListDeletedBefore(ctx, cutoff, limit)
}

// HardDeleteSubscriber permanently deletes a subscriber row.
func (s *Service) HardDeleteSubscriber(ctx context.Context, id uuid.UUID) error {
	if s.subscribers == nil {
		return nil
	}
	return s.subscribers.HardDelete(ctx, id)
}
