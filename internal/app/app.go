package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/worker"
)

// Module wires runtime components and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newHTTPServer,
		newUpdatePoller,
		newTelegramClient,
	),
	fx.Invoke(registerLifecycle),
)

// TelegramClient is the part of the Bot API used to pick the delivery mode.
type TelegramClient interface {
	worker.UpdateSource
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

func newTelegramClient(api *tgbotapi.BotAPI) TelegramClient {
	return api
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type pollerParams struct {
	fx.In

	Client  TelegramClient
	Handler *bot.Handler
	Config  *config.Config
	Logger  *slog.Logger
}

func newUpdatePoller(p pollerParams) *worker.UpdatePoller {
	return worker.NewUpdatePoller(
		p.Client,
		p.Handler,
		p.Config.PollTimeout,
		p.Logger.With(slog.String("component", "poller")),
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Poller     *worker.UpdatePoller
	Client     TelegramClient
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			mode := "polling"
			if p.Config.UseWebhook() {
				mode = "webhook"
				if err := bot.SetWebhook(p.Client, p.Config.WebhookURL, p.Config.WebhookSecret); err != nil {
					return err
				}
			} else {
				if err := bot.DeleteWebhook(p.Client); err != nil {
					return fmt.Errorf("switch to polling: %w", err)
				}
				p.Poller.Start(context.WithoutCancel(ctx))
			}

			p.Logger.Info("starting achieverbot",
				slog.String("addr", p.Server.Addr),
				slog.String("mode", mode),
				slog.String("division", p.Config.Division),
			)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Poller.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("achieverbot stopped")
			return nil
		},
	})
}
