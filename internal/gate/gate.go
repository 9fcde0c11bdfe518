package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
)

// Notice is shown to the user once the data stores stay unreachable after every attempt.
const Notice = "⚠️ Временные проблемы с базой данных. Попробуйте позже."

// Outcome summarizes how an interaction ended.
type Outcome int

const (
	Completed Outcome = iota
	Exhausted
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Exhausted:
		return "exhausted"
	default:
		return "failed"
	}
}

// Actor identifies who triggered an interaction and how to answer them.
// Reply is nil for interactions that cannot be answered.
type Actor struct {
	ChatID int64
	Reply  func(ctx context.Context, text string) error
}

// Scope carries the sessions and the resolved user into a handler.
type Scope struct {
	Primary   repository.Session
	Secondary repository.Session
	// User is nil when the actor has no staff record.
	User *model.User

	logger *slog.Logger
	hooks  []func(context.Context)
}

// OnCommit schedules fn to run after both sessions committed.
func (s *Scope) OnCommit(fn func(ctx context.Context)) {
	s.hooks = append(s.hooks, fn)
}

// Logger returns the interaction logger.
func (s *Scope) Logger() *slog.Logger {
	return s.logger
}

// Handler is the unit of work run inside a scope.
type Handler func(ctx context.Context, scope *Scope) error

// Gate opens both data stores for every interaction and retries transient connection failures.
type Gate struct {
	stores   repository.Stores
	attempts int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option customizes a Gate.
type Option func(*Gate)

// WithAttempts overrides DefaultAttempts.
func WithAttempts(n int) Option {
	return func(g *Gate) {
		if n > 0 {
			g.attempts = n
		}
	}
}

// WithMetrics records outcomes and retries.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

// New constructs a gate over both stores.
func New(stores repository.Stores, logger *slog.Logger, opts ...Option) *Gate {
	g := &Gate{stores: stores, attempts: DefaultAttempts, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes fn inside a fresh scope. Opening the sessions and resolving the user are
// retried on Transient errors; fn itself runs at most once. Errors never leave Run.
func (g *Gate) Run(ctx context.Context, actor Actor, fn Handler) Outcome {
	logger := g.logger.With(
		slog.String("interaction_id", uuid.NewString()),
		slog.Int64("chat_id", actor.ChatID),
	)

	var scope *Scope
	err := Retry(ctx, g.attempts, func(ctx context.Context, attempt int) error {
		s, err := g.open(ctx, actor.ChatID)
		if err != nil {
			logger.Warn("database connection error",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", g.attempts),
				slog.String("class", Classify(err).String()),
				slog.String("error", err.Error()),
			)
			if attempt < g.attempts && Classify(err) == Transient {
				g.metrics.ObserveRetry()
			}
			return err
		}
		scope = s
		return nil
	})
	if err != nil {
		if Classify(err) == Transient {
			logger.Error("database attempts exhausted", slog.String("error", err.Error()))
			g.notify(ctx, actor, logger)
			return g.finish(Exhausted)
		}
		logger.Error("open interaction scope failed", slog.String("error", err.Error()))
		return g.finish(Failed)
	}
	scope.logger = logger

	if err := fn(ctx, scope); err != nil {
		g.release(ctx, scope, logger)
		logger.Error("interaction failed", slog.String("class", Classify(err).String()), slog.String("error", err.Error()))
		if Classify(err) == Transient {
			g.notify(ctx, actor, logger)
		}
		return g.finish(Failed)
	}

	if err := g.commit(ctx, scope); err != nil {
		g.release(ctx, scope, logger)
		logger.Error("commit interaction failed", slog.String("error", err.Error()))
		if Classify(err) == Transient {
			g.notify(ctx, actor, logger)
		}
		return g.finish(Failed)
	}

	for _, hook := range scope.hooks {
		hook(ctx)
	}
	return g.finish(Completed)
}

func (g *Gate) open(ctx context.Context, chatID int64) (*Scope, error) {
	primary, err := g.stores.Primary.Begin(ctx)
	if err != nil {
		return nil, err
	}
	secondary, err := g.stores.Secondary.Begin(ctx)
	if err != nil {
		_ = primary.Rollback(ctx)
		return nil, err
	}
	scope := &Scope{Primary: primary, Secondary: secondary}

	user, err := primary.Users().GetByChatID(ctx, chatID)
	switch {
	case err == nil:
		scope.User = user
	case errors.Is(err, domainErrors.ErrNotFound):
	default:
		g.release(ctx, scope, g.logger)
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return scope, nil
}

// commit finishes the read-only primary first. The secondary holds the writes and
// commits last, so a failed commit leaves nothing persisted.
func (g *Gate) commit(ctx context.Context, scope *Scope) error {
	if err := scope.Primary.Commit(ctx); err != nil {
		return fmt.Errorf("commit primary: %w", err)
	}
	if err := scope.Secondary.Commit(ctx); err != nil {
		return fmt.Errorf("commit secondary: %w", err)
	}
	return nil
}

func (g *Gate) release(ctx context.Context, scope *Scope, logger *slog.Logger) {
	for _, session := range []repository.Session{scope.Secondary, scope.Primary} {
		if err := session.Rollback(ctx); err != nil {
			logger.Warn("rollback failed", slog.String("error", err.Error()))
		}
	}
}

func (g *Gate) notify(ctx context.Context, actor Actor, logger *slog.Logger) {
	if actor.Reply == nil {
		return
	}
	if err := actor.Reply(ctx, Notice); err != nil {
		logger.Warn("send database notice failed", slog.String("error", err.Error()))
	}
}

func (g *Gate) finish(o Outcome) Outcome {
	g.metrics.ObserveInteraction(o.String())
	return o
}
