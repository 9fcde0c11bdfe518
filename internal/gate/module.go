package gate

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
)

var Module = fx.Provide(newGate)

type gateParams struct {
	fx.In

	Stores  repository.Stores
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newGate(p gateParams) *Gate {
	return New(p.Stores, p.Logger, WithMetrics(p.Metrics))
}
