package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/postgres"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/state"
	"github.com/ERTG-BOTS/AchieverBot/internal/test"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		BotToken:             "123:stub",
		Division:             config.DivisionNTP,
		PrimaryDatabaseURI:   "postgres://primary",
		SecondaryDatabaseURI: "postgres://secondary",
		RunAddress:           ":0",
		StateTTL:             time.Hour,
		PollTimeout:          time.Second,
		ShutdownTimeout:      time.Millisecond,
		LogLevel:             "info",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	stores, _, _ := test.NewStores()

	var (
		handler *bot.Handler
		engine  *gin.Engine
		factory *usecase.Factory
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Stores{}),
			fx.Replace(stores),
			fx.Replace(state.Store(state.NewMemoryStore())),
			fx.Replace(&tgbotapi.BotAPI{}),
		),
		fx.Populate(&handler, &engine, &factory),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if handler == nil || engine == nil || factory == nil {
		t.Fatal("expected bot handler, router and use case factory instances")
	}
}
