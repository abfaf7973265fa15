package privacyhttp

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultClientIP(t *testing.T) {
	fn := DefaultClientIP()

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	require.Equal(t, "203.0.113.9", fn(r))

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "198.51.100.7:4431"
	require.Equal(t, "198.51.100.7", fn(r))

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = ""
	require.Equal(t, "anonymous", fn(r))

	// Whitespace-only forwarded header falls through to the peer address.
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "  ")
	r.RemoteAddr = "198.51.100.7:4431"
	require.Equal(t, "198.51.100.7", fn(r))
}
