package privacyhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signAdminToken(t *testing.T, secret []byte, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString(secret)
	require.NoError(t, err)
	return s
}

func TestAdminEventsRequiresToken(t *testing.T) {
	s, _, _ := newTestService(t)
	s.WithAdminSecret([]byte("test-secret"))
	h := s.APIHandler()

	w := get(h, "/admin/privacy-events")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"missing_token"}`, w.Body.String())
}

func TestAdminEventsRejectsBadToken(t *testing.T) {
	s, _, _ := newTestService(t)
	s.WithAdminSecret([]byte("test-secret"))
	h := s.APIHandler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/privacy-events", nil)
	r.Header.Set("Authorization", "Bearer "+signAdminToken(t, []byte("wrong-secret"), "admin"))
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"invalid_token"}`, w.Body.String())
}

func TestAdminEventsRejectsNonAdminRole(t *testing.T) {
	s, _, _ := newTestService(t)
	s.WithAdminSecret([]byte("test-secret"))
	h := s.APIHandler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/privacy-events", nil)
	r.Header.Set("Authorization", "Bearer "+signAdminToken(t, []byte("test-secret"), "viewer"))
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"insufficient_role"}`, w.Body.String())
}

func TestAdminEventsListsRecentActivity(t *testing.T) {
	s, _, _ := newTestService(t)
	s.WithAdminSecret([]byte("test-secret"))
	h := s.APIHandler()

	w := postJSON(h, "/data-export", `{"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/privacy-events", nil)
	r.Header.Set("Authorization", "Bearer "+signAdminToken(t, []byte("test-secret"), "admin"))
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "export_requested")
	require.Contains(t, w.Body.String(), "user@example.com")
}

func TestAdminRoutesAbsentWithoutSecret(t *testing.T) {
	s, _, _ := newTestService(t)
	h := s.APIHandler()

	w := get(h, "/admin/privacy-events")
	require.Equal(t, http.StatusNotFound, w.Code)
}
