package privacyhttp

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JNZader/portfolio-2025-sub001/ratelimit"
)

type failingLimiter struct{}

func (failingLimiter) AllowNamed(ctx context.Context, bucket, key string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, context.DeadlineExceeded
}

func TestErrorShape_ExportBadJSON(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	w := postJSON(h, "/data-export", `{`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "application/json", strings.TrimSpace(strings.Split(w.Header().Get("Content-Type"), ";")[0]))
	require.JSONEq(t, `{"error":"invalid_request"}`, w.Body.String())
}

func TestErrorShape_ExportUnknownField(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	w := postJSON(h, "/data-export", `{"email":"a@b.co","extra":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"invalid_request"}`, w.Body.String())
}

func TestErrorShape_ExportMissingEmail(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	w := postJSON(h, "/data-export", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"email_required"}`, w.Body.String())
}

func TestErrorShape_ExportInvalidEmail(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	w := postJSON(h, "/data-export", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"invalid_email"}`, w.Body.String())
}

func TestErrorShape_DeletionMissingConfirmation(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	w := postJSON(h, "/data-deletion", `{"email":"a@b.co"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"confirmation_required"}`, w.Body.String())
}

func TestErrorShape_DeletionReasonTooLong(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	reason := strings.Repeat("x", 501)
	w := postJSON(h, "/data-deletion", `{"email":"a@b.co","confirmation":true,"reason":"`+reason+`"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"reason_too_long"}`, w.Body.String())
}

func TestErrorShape_ConfirmTokenNotProvided(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	for _, path := range []string{"/data-export/confirm", "/data-deletion/confirm", "/newsletter/confirm"} {
		w := get(h, path)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.JSONEq(t, `{"error":"token_not_provided"}`, w.Body.String(), path)
	}
}

func TestErrorShape_ConfirmUnknownToken(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	w := get(h, "/data-export/confirm?token=abcdef123456")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"invalid_or_expired_token"}`, w.Body.String())
}
