package privacyhttp

import (
	"errors"
	stdlog "log"
	"net/http"
	"strings"

	core "github.com/JNZader/portfolio-2025-sub001/core"
)

func (s *Service) handleNewsletterSubscribePOST(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid_request")
		return
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	d, err := s.allow(r, RLNewsletterSubscribe)
	if err != nil {
		stdlog.Printf("[privacykit/http] rate limiter unavailable bucket=%s err=%v", RLNewsletterSubscribe, err)
		serverErr(w, "server_error")
		return
	}
	if !d.Allowed {
		tooMany(w, d.ResetAt)
		return
	}

	if err := s.svc.SubscribeNewsletter(r.Context(), email); err != nil {
		if errors.Is(err, core.ErrEmailSend) {
			stdlog.Printf("[privacykit/http] newsletter confirmation send failed: %v", err)
			serverErr(w, "email_send_failed")
			return
		}
		stdlog.Printf("[privacykit/http] newsletter subscribe failed: %v", err)
		serverErr(w, "server_error")
		return
	}
	s.recordEvent(r, core.EventNewsletterSubscribe, email, "")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Check your email to confirm your subscription.",
	})
}

func (s *Service) handleNewsletterConfirmGET(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		badRequest(w, "token_not_provided")
		return
	}

	email, err := s.svc.ConfirmNewsletterSubscription(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrTokenInvalid):
			badRequest(w, "invalid_or_expired_token")
		case errors.Is(err, core.ErrNotFound):
			notFound(w, "not_found")
		default:
			stdlog.Printf("[privacykit/http] newsletter confirm failed: %v", err)
			serverErr(w, "server_error")
		}
		return
	}
	s.recordEvent(r, core.EventNewsletterConfirmed, email, "")
	http.Redirect(w, r, s.svc.Config().BaseURL+"/newsletter/confirmed", http.StatusFound)
}

func (s *Service) handleNewsletterUnsubscribePOST(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid_request")
		return
	}
	email, err := validateEmail(req.Email)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	d, err := s.allow(r, RLNewsletterUnsubscribe)
	if err != nil {
		stdlog.Printf("[privacykit/http] rate limiter unavailable bucket=%s err=%v", RLNewsletterUnsubscribe, err)
		serverErr(w, "server_error")
		return
	}
	if !d.Allowed {
		tooMany(w, d.ResetAt)
		return
	}

	if err := s.svc.UnsubscribeNewsletter(r.Context(), email); err != nil {
		stdlog.Printf("[privacykit/http] newsletter unsubscribe failed: %v", err)
		serverErr(w, "server_error")
		return
	}
	// Same body whether or not the address was subscribed.
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "You will no longer receive the newsletter at this address.",
	})
}
