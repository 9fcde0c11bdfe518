package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
	"github.com/ERTG-BOTS/AchieverBot/internal/server/http/handlers"
	"github.com/ERTG-BOTS/AchieverBot/internal/server/http/middleware"
)

const (
	PathHealth  = "/healthz"
	PathMetrics = "/metrics"
	PathWebhook = "/webhook"
)

// Setup configures gin router with handlers and middleware.
// The webhook route exists only when the bot is configured for webhook delivery.
func Setup(
	health handlers.HealthChecker,
	dispatcher handlers.Dispatcher,
	m *metrics.Metrics,
	cfg *config.Config,
	logger *slog.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger, PathHealth, PathMetrics))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{PathWebhook})))

	healthHandler := handlers.NewHealthHandler(health)
	engine.GET(PathHealth, healthHandler.Check)

	if m != nil {
		engine.GET(PathMetrics, gin.WrapH(m.Handler()))
	}

	if cfg.UseWebhook() {
		webhookHandler := handlers.NewWebhookHandler(dispatcher)
		engine.POST(PathWebhook,
			middleware.SecretToken(bot.SecretHeader, cfg.WebhookSecret),
			webhookHandler.Receive,
		)
	}

	return engine
}
