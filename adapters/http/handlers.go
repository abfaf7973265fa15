package privacyhttp

import (
	"net/http"

	core "github.com/JNZader/portfolio-2025-sub001/core"
)

// APIHandler returns a handler serving the privacy and newsletter routes.
// It is intended to be mounted under the host's mux/router at any prefix.
func (s *Service) APIHandler() http.Handler {
	if s == nil || s.svc == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { serverErr(w, "privacykit_not_initialized") })
	}
	if !core.IsDevEnvironment() {
		if s.svc.EphemeralMode() != core.EphemeralRedis {
			panic("privacykit: redis-compatible ephemeral store is required in production")
		}
	}

	mux := http.NewServeMux()

	// GDPR verification workflows
	mux.Handle("POST /data-export", http.HandlerFunc(s.handleDataExportRequestPOST))
	mux.Handle("GET /data-export/confirm", http.HandlerFunc(s.handleDataExportConfirmGET))
	mux.Handle("POST /data-deletion", http.HandlerFunc(s.handleDataDeletionRequestPOST))
	mux.Handle("GET /data-deletion/confirm", http.HandlerFunc(s.handleDataDeletionConfirmGET))

	// Newsletter double opt-in
	mux.Handle("POST /newsletter/subscribe", http.HandlerFunc(s.handleNewsletterSubscribePOST))
	mux.Handle("GET /newsletter/confirm", http.HandlerFunc(s.handleNewsletterConfirmGET))
	mux.Handle("POST /newsletter/unsubscribe", http.HandlerFunc(s.handleNewsletterUnsubscribePOST))

	// Admin (only when a secret is configured)
	if len(s.adminSecret) > 0 {
		admin := RequireAdmin(s.adminSecret)
		mux.Handle("GET /admin/privacy-events", admin(http.HandlerFunc(s.handleAdminEventsGET)))
	}

	return mux
}
