package privacyhttp

import (
	"errors"
	stdlog "log"
	"net/http"
	"strings"

	core "github.com/JNZader/portfolio-2025-sub001/core"
)

func (s *Service) handleDataExportRequestPOST(w http.ResponseWriter, r *http.Request) {
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

	d, err := s.allow(r, RLDataExportRequest)
	if err != nil {
		stdlog.Printf("[privacykit/http] rate limiter unavailable bucket=%s err=%v", RLDataExportRequest, err)
		serverErr(w, "server_error")
		return
	}
	if !d.Allowed {
		s.recordEvent(r, core.EventRequestRateLimited, email, "data export request")
		tooMany(w, d.ResetAt)
		return
	}

	if err := s.svc.RequestDataExport(r.Context(), email); err != nil {
		if errors.Is(err, core.ErrEmailSend) {
			stdlog.Printf("[privacykit/http] export confirmation send failed: %v", err)
			serverErr(w, "email_send_failed")
			return
		}
		stdlog.Printf("[privacykit/http] export request failed: %v", err)
		serverErr(w, "server_error")
		return
	}
	s.recordEvent(r, core.EventExportRequested, email, "")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Check your email for a link to confirm your data export request.",
	})
}

func (s *Service) handleDataExportConfirmGET(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		badRequest(w, "token_not_provided")
		return
	}

	doc, err := s.svc.ConfirmDataExport(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrTokenInvalid):
			badRequest(w, "invalid_or_expired_token")
		case errors.Is(err, core.ErrNotFound):
			notFound(w, "not_found")
		default:
			stdlog.Printf("[privacykit/http] export confirm failed: %v", err)
			serverErr(w, "server_error")
		}
		return
	}
	s.recordEvent(r, core.EventExportCompleted, doc.Email, "")
	w.Header().Set("Content-Disposition", `attachment; filename="data-export.json"`)
	writeJSON(w, http.StatusOK, doc)
}
