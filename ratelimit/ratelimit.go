// Package ratelimit holds the shared types for the named-bucket fixed-window
// limiters in the memory and redis subpackages.
package ratelimit

import "time"

// Limit configures a named rate limit bucket.
type Limit struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one counted attempt. The counter increments on
// every attempt, allowed or not (simple counting policy).
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}
