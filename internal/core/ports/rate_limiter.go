package ports

import "context"

// RateLimiter bounds how often a sensitive operation may run for one subject
// (an email address, an IP). Allow reports whether this attempt is within the
// limit; the attempt is counted either way.
type RateLimiter interface {
	Allow(ctx context.Context, op, subject string) (bool, error)
}
