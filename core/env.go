package core

import (
	"os"
	"strings"
)

func getEnvironment() string {
	for _, k := range []string{"ENV", "APP_ENV", "ENVIRONMENT"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return strings.ToLower(v)
		}
	}
	return ""
}

func isDevEnvironment(env string) bool {
	switch env {
	case "", "dev", "development", "test", "local":
		return true
	}
	return false
}

// IsDevEnvironment reports whether the current ENV/APP_ENV/ENVIRONMENT is non-production.
func IsDevEnvironment() bool {
	return isDevEnvironment(getEnvironment())
}
