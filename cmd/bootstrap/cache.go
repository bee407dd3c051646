package bootstrap

import (
	"context"

	"fairway-booking/internal/infra/cache"
	"fairway-booking/internal/infra/metrics"
	"fairway-booking/internal/pkg/config"
	"fairway-booking/internal/usecase/commands"
	"fairway-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedis,
		NewCache,
		func(c *cache.Cache) commands.CacheInvalidator { return c },
		func(c *cache.Cache) queries.ViewCache { return c },
	),
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.New,
		func(m *metrics.Metrics) commands.MetricsRecorder { return m },
		func(m *metrics.Metrics) queries.CacheMetrics { return m },
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return client, nil
}

func NewCache(client *redis.Client, cfg config.Config) *cache.Cache {
	return cache.New(client, cfg.Cache)
}
