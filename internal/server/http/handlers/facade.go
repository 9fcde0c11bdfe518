package handlers

import (
	"context"

	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/gate"
)

// HealthChecker reports whether the data stores answer.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dispatcher handles one Telegram update.
type Dispatcher interface {
	Handle(ctx context.Context, u bot.Update) gate.Outcome
}
