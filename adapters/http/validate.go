package privacyhttp

import (
	"fmt"
	"regexp"
	"strings"
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const maxEmailLen = 254

// validateEmail trims and lowercases the address; shape checks happen before
// any rate-limit counter is touched.
func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("email_required")
	}
	if len(email) > maxEmailLen {
		return "", fmt.Errorf("email_too_long")
	}
	if !reEmail.MatchString(email) {
		return "", fmt.Errorf("invalid_email")
	}
	return email, nil
}
