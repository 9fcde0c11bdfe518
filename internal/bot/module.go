package bot

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/gate"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/state"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

// Module provides the Bot API client, the Sender and the update Handler.
var Module = fx.Provide(
	newBotAPI,
	newSender,
	newHandler,
)

func newBotAPI(cfg *config.Config, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	if err := tgbotapi.SetLogger(botLogger{logger: logger.With(slog.String("component", "telegram"))}); err != nil {
		return nil, fmt.Errorf("set telegram logger: %w", err)
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	logger.Info("authorized on telegram", slog.String("bot", api.Self.UserName))
	return api, nil
}

func newSender(api *tgbotapi.BotAPI) Sender {
	return NewTelegram(api)
}

type handlerParams struct {
	fx.In

	Gate    *gate.Gate
	Factory *usecase.Factory
	States  state.Store
	Sender  Sender
	Metrics *metrics.Metrics `optional:"true"`
	Logger  *slog.Logger
}

func newHandler(p handlerParams) *Handler {
	return NewHandler(p.Gate, p.Factory, p.States, p.Sender, p.Metrics, p.Logger.With(slog.String("component", "bot")))
}

// botLogger routes the client library output to slog.
type botLogger struct {
	logger *slog.Logger
}

func (l botLogger) Println(v ...interface{}) {
	l.logger.Debug(fmt.Sprint(v...))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
