package state

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
)

// Module provides a Redis backed Store when REDIS_URL is set and an in-memory one otherwise.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Warn("redis url not configured, keeping conversation state in memory")
		return NewMemoryStore(), nil
	}

	client, err := NewRedisClient(p.Ctx, p.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	p.Logger.Info("connected to redis")
	return NewRedisStore(client, p.Config.StateTTL), nil
}
