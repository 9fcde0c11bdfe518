package usecase

import (
	"log/slog"
	"time"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
)

// Set bundles the use cases bound to the sessions of one interaction.
type Set struct {
	Balance    *BalanceUseCase
	Redemption *RedemptionUseCase
	Profile    *ProfileUseCase
	Search     *SearchUseCase
}

// Factory builds use case sets for interaction scoped sessions.
type Factory struct {
	policy   RedemptionPolicy
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewFactory constructs Factory. notifier and m may be nil.
func NewFactory(cfg *config.Config, notifier Notifier, m *metrics.Metrics, logger *slog.Logger) *Factory {
	return &Factory{
		policy: RedemptionPolicy{
			NotifySupervisor: cfg.NotifySupervisor,
			OncePerMonth:     cfg.RedeemOncePerMonth,
		},
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// For returns use cases reading staff data from primary and ledgers from secondary.
func (f *Factory) For(primary, secondary repository.Session) *Set {
	balance := NewBalanceUseCase(secondary.Accruals(), secondary.Executes())
	return &Set{
		Balance: balance,
		Redemption: &RedemptionUseCase{
			balance:  balance,
			awards:   secondary.Awards(),
			executes: secondary.Executes(),
			schedule: primary.Schedule(),
			users:    primary.Users(),
			notifier: f.notifier,
			policy:   f.policy,
			metrics:  f.metrics,
			logger:   f.logger,
			now:      f.now,
		},
		Profile: &ProfileUseCase{
			balance:  balance,
			accruals: secondary.Accruals(),
			executes: secondary.Executes(),
		},
		Search: NewSearchUseCase(primary.Users(), repository.DefaultSearchLimit),
	}
}
