package privacyhttp

import (
	stdlog "log"
	"net/http"
	"strconv"
)

func (s *Service) handleAdminEventsGET(w http.ResponseWriter, r *http.Request) {
	eventLog := s.svc.EventLog()
	if eventLog == nil {
		notFound(w, "not_found")
		return
	}
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	events, err := eventLog.Recent(r.Context(), limit)
	if err != nil {
		stdlog.Printf("[privacykit/http] event log read failed: %v", err)
		serverErr(w, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
