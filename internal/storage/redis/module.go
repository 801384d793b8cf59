package redis

import (
	"context"
	"log/slog"

	rd "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/undangan/internal/config"
)

// Module provides an optional Redis client. It resolves to nil when no
// address is configured.
var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Invoke(registerLifecycle),
)

// NewClient builds a Redis client from configuration or returns nil when
// REDIS_ADDR is empty.
func NewClient(cfg *config.Config) *rd.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return rd.NewClient(&rd.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
}

func registerLifecycle(lc fx.Lifecycle, client *rd.Client, logger *slog.Logger) {
	if client == nil {
		logger.Info("redis disabled, rate limiting off")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Limiter fails open, so an unreachable Redis is not fatal.
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis not reachable", slog.String("addr", client.Options().Addr), slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
