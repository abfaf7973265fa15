package core

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
)

// SubscribeNewsletter starts the double-opt-in flow: a pending subscriber
// row plus a single-use confirmation token. Re-subscribing an existing
// address just re-issues the confirmation link.
func (s *Service) SubscribeNewsletter(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if s.subscribers == nil {
		return ErrStoreUnavailable
	}
	if _, err := s.subscribers.UpsertPending(ctx, email); err != nil {
		return err
	}
	token, err := newOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.storeNewsletterConfirm(ctx, sha256Hex(token), newsletterConfirmData{Email: email}, ConfirmTokenTTL); err != nil {
		return err
	}

	link := s.absoluteURL("/newsletter/confirm?token=" + token)
	subject := fmt.Sprintf("Confirm your subscription - %s", s.cfg.SiteName)
	html := confirmEmailHTML("newsletter subscription", link, "confirm your subscription")
	if s.email != nil {
		if err := s.email.Send(ctx, email, subject, html); err != nil {
			return fmt.Errorf("%w: %v", ErrEmailSend, err)
		}
	} else {
		stdlog.Printf("[privacykit/dev-email] newsletter confirm to=%s link=%s", email, link)
	}
	return nil
}

// ConfirmNewsletterSubscription consumes the token and marks the subscriber
// confirmed. Returns the confirmed email.
func (s *Service) ConfirmNewsletterSubscription(ctx context.Context, token string) (string, error) {
	data, ok, err := s.consumeNewsletterConfirm(ctx, sha256Hex(token))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrTokenInvalid
	}
	if s.subscribers == nil {
		return "", ErrNotFound
	}
	if err := s.subscribers.ConfirmSubscription(ctx, data.Email); err != nil {
		return "", err
	}
	return data.Email, nil
}

// UnsubscribeNewsletter removes the address from delivery. Unknown addresses
// are treated the same as known ones so the endpoint cannot be used to probe
// the subscriber list.
func (s *Service) UnsubscribeNewsletter(ctx context.Context, email string) error {
	if s.subscribers == nil {
		return nil
	}
	err := s.subscribers.Unsubscribe(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
