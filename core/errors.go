package core

import "errors"

var (
	// ErrTokenInvalid covers missing, expired, and already-consumed tokens.
	// Callers must not be able to tell these apart.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrNotFound is returned when a confirmed action targets an email with
	// no underlying subscriber record. The token has already been consumed
	// by the time this is returned.
	ErrNotFound = errors.New("not found")

	// ErrEmailSend wraps delivery failures from the EmailSender. On the
	// request path the token has already been written when this surfaces.
	ErrEmailSend = errors.New("email send failed")

	// ErrStoreUnavailable indicates the ephemeral store is missing or failing.
	ErrStoreUnavailable = errors.New("ephemeral store unavailable")
)
