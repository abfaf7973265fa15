package privacyhttp

import (
	"time"

	"github.com/JNZader/portfolio-2025-sub001/ratelimit"
)

// Bucket names used by the privacy and newsletter endpoints. Quotas are
// scoped per bucket, so export attempts cannot exhaust the deletion quota.
const (
	RLDataExportRequest   = "privacy_export_request"
	RLDataDeletionRequest = "privacy_deletion_request"

	RLNewsletterSubscribe   = "newsletter_subscribe"
	RLNewsletterUnsubscribe = "newsletter_unsubscribe"
)

// DefaultRateLimits returns the built-in per-endpoint limits, enforced per
// client identifier.
func DefaultRateLimits() map[string]ratelimit.Limit {
	return map[string]ratelimit.Limit{
		"default": {Limit: 120, Window: time.Minute},

		RLDataExportRequest:   {Limit: 3, Window: time.Hour},
		RLDataDeletionRequest: {Limit: 2, Window: 24 * time.Hour},

		RLNewsletterSubscribe:   {Limit: 5, Window: time.Hour},
		RLNewsletterUnsubscribe: {Limit: 10, Window: time.Hour},
	}
}
