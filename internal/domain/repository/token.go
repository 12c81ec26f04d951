package repository

import (
	"context"
	"time"
)

// TokenRepository holds verified payment transaction ids until an order
// submission spends them. Tokens are single-use and expire after the TTL.
type TokenRepository interface {
	Put(ctx context.Context, token string, ttl time.Duration) error
	// Consume removes the token and reports whether it was present.
	Consume(ctx context.Context, token string) (bool, error)
}
