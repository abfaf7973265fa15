package core

import (
	"context"
	"fmt"
	"html"
	stdlog "log"
)

// MaxDeleteReasonLen caps the optional free-text reason on deletion requests.
const MaxDeleteReasonLen = 500

// RequestDataDeletion mints a single-use confirmation token for an erasure
// request. The optional reason travels inside the stored payload only; it is
// never embedded in the outbound link.
func (s *Service) RequestDataDeletion(ctx context.Context, email, reason string) error {
	email = normalizeEmail(email)
	token, err := newOpaqueToken()
	if err != nil {
		return err
	}
	data := deletionRequestData{Email: email, Reason: reason}
	if err := s.storeDeletionRequest(ctx, sha256Hex(token), data, ConfirmTokenTTL); err != nil {
		return err
	}

	link := s.absoluteURL("/data-deletion/confirm?token=" + token)
	subject := fmt.Sprintf("Confirm your data deletion request - %s", s.cfg.SiteName)
	body := confirmEmailHTML("permanent deletion of your data", link, "confirm the deletion")
	if s.email != nil {
		if err := s.email.Send(ctx, email, subject, body); err != nil {
			return fmt.Errorf("%w: %v", ErrEmailSend, err)
		}
	} else {
		stdlog.Printf("[privacykit/dev-email] data deletion confirm to=%s link=%s", email, link)
	}
	return nil
}

// ConfirmDataDeletion consumes the token and erases the subscriber record.
// The deletion receipt email is best-effort: once the record is gone, a mail
// glitch must not be reported as a failed deletion.
func (s *Service) ConfirmDataDeletion(ctx context.Context, token string) (string, error) {
	data, ok, err := s.consumeDeletionRequest(ctx, sha256Hex(token))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrTokenInvalid
	}
	if s.subscribers == nil {
		return "", ErrNotFound
	}
	if err := s.subscribers.SoftDelete(ctx, data.Email, data.Reason); err != nil {
		return "", err
	}
	s.sendDeletionReceipt(ctx, data)
	return data.Email, nil
}

func (s *Service) sendDeletionReceipt(ctx context.Context, data deletionRequestData) {
	subject := fmt.Sprintf("Your data has been deleted - %s", s.cfg.SiteName)
	body := `<p>Your data has been removed as requested.</p>`
	if data.Reason != "" {
		body += fmt.Sprintf(`<p>Reason you provided: %s</p>`, html.EscapeString(data.Reason))
	}
	if s.email != nil {
		if err := s.email.Send(ctx, data.Email, subject, body); err != nil {
			stdlog.Printf("[privacykit/deletion] receipt send failed to=%s err=%v", data.Email, err)
		}
		return
	}
	stdlog.Printf("[privacykit/dev-email] deletion receipt to=%s", data.Email)
}
