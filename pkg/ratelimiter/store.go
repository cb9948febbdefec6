package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. ConsumeTokens must be atomic per key.
type Store interface {
	// ConsumeTokens takes tokens from the bucket if enough are left. A denied
	// request leaves the bucket untouched and reports a negative remainder.
	// Zero tokens only refreshes the bucket.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset forgets the bucket for key.
	Reset(ctx context.Context, key string) error
}
