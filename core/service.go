package core

import (
	"context"
)

// Service holds the privacy workflow logic: verification-token issuance for
// data export / data deletion requests, token consumption, and the newsletter
// double-opt-in flow. Construct once at startup and share; all dependencies
// are injected via With* builders.
type Service struct {
	cfg            Config
	ephemeralStore EphemeralStore
	ephemeralMode  EphemeralMode
	subscribers    SubscriberStore
	email          EmailSender
	events         EventLog
}

// EmailSender delivers transactional mail (confirmation links, deletion
// receipts). Implementations are provided by the host application; when nil,
// outbound mail is logged to stdout for development.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// NewService constructs a Service from config. Stores are not defaulted here;
// callers (or the HTTP adapter) must attach an ephemeral store before the
// request flows can issue tokens.
func NewService(cfg Config) *Service {
	cfg.applyDefaults()
	return &Service{cfg: cfg}
}

func (s *Service) Config() Config { return s.cfg }

// WithSubscriberStore sets the backing store that export/erasure act upon.
func (s *Service) WithSubscriberStore(store SubscriberStore) *Service {
	s.subscribers = store
	return s
}

// WithEmailSender sets the email sender dependency.
func (s *Service) WithEmailSender(sender EmailSender) *Service { s.email = sender; return s }

// HasEmailSender returns true if an email sender is configured.
func (s *Service) HasEmailSender() bool { return s.email != nil }

// WithEventLog sets the privacy audit event sink.
func (s *Service) WithEventLog(log EventLog) *Service { s.events = log; return s }

func (s *Service) EventLog() EventLog { return s.events }
