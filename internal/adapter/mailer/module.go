package mailer

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

// Module exposes the redemption notifier to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newNotifier(p notifierParams) (usecase.Notifier, error) {
	if !p.Config.Email.Enabled() {
		p.Logger.Warn("email host not configured, redemption notices are only logged")
		return logNotifier{logger: p.Logger}, nil
	}
	return New(Options{
		Host:             p.Config.Email.Host,
		Port:             p.Config.Email.Port,
		User:             p.Config.Email.User,
		Password:         p.Config.Email.Password,
		UseSSL:           p.Config.Email.UseSSL,
		DivisionAddr:     p.Config.DivisionAddr(),
		NotifySupervisor: p.Config.NotifySupervisor,
	}, p.Logger.With(slog.String("component", "mailer")), p.Metrics)
}

type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) NotifyRedemption(_ context.Context, r model.Redemption) error {
	n.logger.Info("redemption notice skipped",
		slog.Int64("chat_id", r.User.ChatID),
		slog.String("award", r.Award.Name),
	)
	return nil
}
