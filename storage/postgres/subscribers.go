package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	core "github.com/JNZader/portfolio-2025-sub001/core"
)

// Subscribers is the Postgres-backed SubscriberStore.
type Subscribers struct {
	pg *pgxpool.Pool
}

func NewSubscribers(pg *pgxpool.Pool) *Subscribers {
	return &Subscribers{pg: pg}
}

// Migrate creates the newsletter schema if it does not exist. Intended for
// the dev server; production deployments own their migrations.
func (s *Subscribers) Migrate(ctx context.Context) error {
	_, err := s.pg.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS newsletter;
		CREATE TABLE IF NOT EXISTS newsletter.subscribers (
			id            uuid PRIMARY KEY,
			email         text NOT NULL UNIQUE,
			confirmed     boolean NOT NULL DEFAULT false,
			subscribed_at timestamptz NOT NULL DEFAULT now(),
			confirmed_at  timestamptz,
			deleted_at    timestamptz,
			delete_reason text
		);
	`)
	return err
}

func (s *Subscribers) UpsertPending(ctx context.Context, email string) (*core.Subscriber, error) {
	row := s.pg.QueryRow(ctx, `
		INSERT INTO newsletter.subscribers (id, email)
		VALUES ($1, lower($2))
		ON CONFLICT (email) DO UPDATE
			SET deleted_at = NULL, delete_reason = NULL
		RETURNING id, email, confirmed, subscribed_at, confirmed_at, deleted_at, delete_reason
	`, uuid.New(), email)
	return scanSubscriber(row)
}

func (s *Subscribers) ConfirmSubscription(ctx context.Context, email string) error {
	tag, err := s.pg.Exec(ctx, `
		UPDATE newsletter.subscribers
		SET confirmed = true, confirmed_at = now()
		WHERE email = lower($1) AND deleted_at IS NULL
	`, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Subscribers) GetByEmail(ctx context.Context, email string) (*core.Subscriber, error) {
	row := s.pg.QueryRow(ctx, `
		SELECT id, email, confirmed, subscribed_at, confirmed_at, deleted_at, delete_reason
		FROM newsletter.subscribers
		WHERE email = lower($1) AND deleted_at IS NULL
	`, email)
	sub, err := scanSubscriber(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	return sub, err
}

func (s *Subscribers) SoftDelete(ctx context.Context, email, reason string) error {
	tag, err := s.pg.Exec(ctx, `
		UPDATE newsletter.subscribers
		SET deleted_at = now(), delete_reason = NULLIF($2, '')
		WHERE email = lower($1) AND deleted_at IS NULL
	`, email, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Subscribers) Unsubscribe(ctx context.Context, email string) error {
	_, err := s.pg.Exec(ctx, `
		UPDATE newsletter.subscribers
		SET confirmed = false
		WHERE email = lower($1) AND deleted_at IS NULL
	`, email)
	return err
}

func (s *Subscribers) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.pg.Query(ctx, `
		SELECT id
		FROM newsletter.subscribers
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
		ORDER BY deleted_at ASC
		LIMIT $2
	`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *Subscribers) HardDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.pg.Exec(ctx, `DELETE FROM newsletter.subscribers WHERE id = $1`, id)
	return err
}

func scanSubscriber(row pgx.Row) (*core.Subscriber, error) {
	var sub core.Subscriber
	err := row.Scan(&sub.ID, &sub.Email, &sub.Confirmed, &sub.SubscribedAt, &sub.ConfirmedAt, &sub.DeletedAt, &sub.DeleteReason)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
