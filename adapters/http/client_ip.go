package privacyhttp

import (
	"net"
	"net/http"
	"strings"
)

// ClientIPFunc determines the client identifier used for rate limiting and
// audit events. It must never return an empty string: unknown origins map to
// the shared "anonymous" bucket so throttling still applies.
type ClientIPFunc func(r *http.Request) string

// DefaultClientIP prefers the first entry of the X-Forwarded-For chain, then
// the connection's remote address, then the "anonymous" sentinel.
func DefaultClientIP() ClientIPFunc {
	return func(r *http.Request) string {
		if r == nil {
			return "anonymous"
		}
		if v := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); v != "" {
			// XFF is a comma-separated list; left-most is the original client.
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = v[:i]
			}
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "anonymous"
	}
}
