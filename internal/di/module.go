package di

import (
	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/adapter/mailer"
	"github.com/ERTG-BOTS/AchieverBot/internal/app"
	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/gate"
	"github.com/ERTG-BOTS/AchieverBot/internal/logger"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
	"github.com/ERTG-BOTS/AchieverBot/internal/server/http/router"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/postgres"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/state"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		postgres.Module,
		state.Module,
		gate.Module,
		mailer.Module,
		usecase.Module,
		bot.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
