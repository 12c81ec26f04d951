// Package redistoken keeps verified payment transaction ids in Redis until an
// order submission spends them.
package redistoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "payment_token:"

// commands is the subset of redis.Client the store uses.
type commands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Store implements repository.TokenRepository on Redis. Tokens expire on
// their TTL; GETDEL makes consumption single-use even under concurrent
// submissions.
type Store struct {
	client commands
}

// New creates a token store backed by the given client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Put(ctx context.Context, token string, ttl time.Duration) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := s.client.Set(ctx, keyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("store payment token: %w", err)
	}
	return nil
}

func (s *Store) Consume(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	err := s.client.GetDel(ctx, keyPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume payment token: %w", err)
	}
	return true, nil
}

// HealthCheck verifies Redis connectivity.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}
