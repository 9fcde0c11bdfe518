package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

// Module wires both PostgreSQL stores and their repository ports.
var Module = fx.Options(
	fx.Provide(newStores),
	fx.Provide(func(s *Stores) repository.Stores { return s.Repositories() }),
	fx.Invoke(registerLifecycle),
)

type storesParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStores(p storesParams) (*Stores, error) {
	return NewStores(p.Ctx, StoresConfig{
		PrimaryDSN:   p.Config.PrimaryDatabaseURI,
		SecondaryDSN: p.Config.SecondaryDatabaseURI,
		Migrate:      p.Config.Migrate,
	}, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, stores *Stores) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stores.Close()
			return nil
		},
	})
}
