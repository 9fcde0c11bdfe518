package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/postgres"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Stores  *postgres.Stores
	Handler *bot.Handler
	Metrics *metrics.Metrics `optional:"true"`
	Config  *config.Config
	Logger  *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Stores, p.Handler, p.Metrics, p.Config, p.Logger)
}
