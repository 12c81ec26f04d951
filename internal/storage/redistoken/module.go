package redistoken

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/printq/printq/internal/config"
	"github.com/printq/printq/internal/domain/repository"
)

// Module wires the Redis client and the token repository adapter.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(New),
	fx.Provide(func(s *Store) repository.TokenRepository { return s }),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Config *config.Config
}

func newClient(p clientParams) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client, store *Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.HealthCheck(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
