package core

import "strings"

// Config carries the handful of values the workflows need to build outbound
// mail and confirmation links. Load once at startup; required fields are
// checked by the host (the dev server fails fast on missing BASE_URL).
type Config struct {
	// BaseURL is the public origin of the site, used to build confirmation
	// links and post-confirmation redirects (e.g. "https://example.com").
	BaseURL string
	// SiteName personalizes email subjects. Defaults to "this site".
	SiteName string
	// FromAddress is informational for EmailSender implementations that
	// need an explicit sender identity.
	FromAddress string
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if strings.TrimSpace(c.SiteName) == "" {
		c.SiteName = "this site"
	}
}

func (s *Service) absoluteURL(path string) string {
	return s.cfg.BaseURL + path
}
