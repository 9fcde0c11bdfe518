package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
)

// Module provides the use case factory to the fx container.
var Module = fx.Provide(newFactory)

type factoryParams struct {
	fx.In

	Config   *config.Config
	Notifier Notifier         `optional:"true"`
	Metrics  *metrics.Metrics `optional:"true"`
	Logger   *slog.Logger
}

func newFactory(p factoryParams) *Factory {
	return NewFactory(p.Config, p.Notifier, p.Metrics, p.Logger)
}
