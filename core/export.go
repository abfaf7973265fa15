package core

import (
	"context"
	"fmt"
	stdlog "log"
	"time"
)

// ConfirmTokenTTL bounds every confirmation link, for the export, deletion,
// and newsletter confirm flows alike.
const ConfirmTokenTTL = 15 * time.Minute

// ExportDocument is the downloadable result of a confirmed data export.
type ExportDocument struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Email       string      `json:"email"`
	Subscriber  *Subscriber `json:"subscriber"`
}

// RequestDataExport mints a single-use confirmation token for the email,
// stores it with a 15-minute TTL, and dispatches the confirmation link.
// The response to the caller must stay generic regardless of whether the
// email is known; this method never reports "no such subscriber".
func (s *Service) RequestDataExport(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	token, err := newOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.storeExportRequest(ctx, sha256Hex(token), exportRequestData{Email: email}, ConfirmTokenTTL); err != nil {
		return err
	}

	link := s.absoluteURL("/data-export/confirm?token=" + token)
	subject := fmt.Sprintf("Confirm your data export request - %s", s.cfg.SiteName)
	html := confirmEmailHTML("data export", link, "download a copy of your data")
	if s.email != nil {
		if err := s.email.Send(ctx, email, subject, html); err != nil {
			// The token is already stored and stays valid; surface the
			// delivery failure so the caller can report a server error.
			return fmt.Errorf("%w: %v", ErrEmailSend, err)
		}
	} else {
		stdlog.Printf("[privacykit/dev-email] data export confirm to=%s link=%s", email, link)
	}
	return nil
}

// ConfirmDataExport consumes the token (single use, atomic with deletion)
// and assembles the export document for the stored email.
func (s *Service) ConfirmDataExport(ctx context.Context, token string) (*ExportDocument, error) {
	data, ok, err := s.consumeExportRequest(ctx, sha256Hex(token))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTokenInvalid
	}
	if s.subscribers == nil {
		return nil, ErrNotFound
	}
	sub, err := s.subscribers.GetByEmail(ctx, data.Email)
	if err != nil {
		// Token is consumed either way; the same link cannot be retried.
		return nil, err
	}
	return &ExportDocument{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Email:       data.Email,
		Subscriber:  sub,
	}, nil
}

func confirmEmailHTML(action, link, blurb string) string {
	return fmt.Sprintf(
		`<p>You (or someone using your email address) requested a %s.</p>`+
			`<p><a href="%s">Click here to %s</a>. The link is valid for 15 minutes and can be used once.</p>`+
			`<p>If you did not request this, you can ignore this email.</p>`,
		action, link, blurb)
}
