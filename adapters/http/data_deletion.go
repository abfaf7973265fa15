package privacyhttp

import (
	"errors"
	stdlog "log"
	"net/http"
	"strings"

	core "github.com/JNZader/portfolio-2025-sub001/core"
)

func (s *Service) handleDataDeletionRequestPOST(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string `json:"email"`
		Confirmation bool   `json:"confirmation"`
		Reason       string `json:"reason"`
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
	if !req.Confirmation {
		badRequest(w, "confirmation_required")
		return
	}
	reason := strings.TrimSpace(req.Reason)
	if len(reason) > core.MaxDeleteReasonLen {
		badRequest(w, "reason_too_long")
		return
	}

	d, err := s.allow(r, RLDataDeletionRequest)
	if err != nil {
		stdlog.Printf("[privacykit/http] rate limiter unavailable bucket=%s err=%v", RLDataDeletionRequest, err)
		serverErr(w, "server_error")
		return
	}
	if !d.Allowed {
		s.recordEvent(r, core.EventRequestRateLimited, email, "data deletion request")
		tooMany(w, d.ResetAt)
		return
	}

	if err := s.svc.RequestDataDeletion(r.Context(), email, reason); err != nil {
		if errors.Is(err, core.ErrEmailSend) {
			stdlog.Printf("[privacykit/http] deletion confirmation send failed: %v", err)
			serverErr(w, "email_send_failed")
			return
		}
		stdlog.Printf("[privacykit/http] deletion request failed: %v", err)
		serverErr(w, "server_error")
		return
	}
	s.recordEvent(r, core.EventDeletionRequested, email, "")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Check your email for a link to confirm the deletion of your data.",
	})
}

func (s *Service) handleDataDeletionConfirmGET(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		badRequest(w, "token_not_provided")
		return
	}

	email, err := s.svc.ConfirmDataDeletion(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrTokenInvalid):
			badRequest(w, "invalid_or_expired_token")
		case errors.Is(err, core.ErrNotFound):
			notFound(w, "not_found")
		default:
			stdlog.Printf("[privacykit/http] deletion confirm failed: %v", err)
			serverErr(w, "server_error")
		}
		return
	}
	s.recordEvent(r, core.EventDeletionCompleted, email, "")
	http.Redirect(w, r, s.svc.Config().BaseURL+"/privacy/deleted", http.StatusFound)
}
