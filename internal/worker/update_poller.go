package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ERTG-BOTS/AchieverBot/internal/bot"
	"github.com/ERTG-BOTS/AchieverBot/internal/gate"
)

// AllowedUpdates limits the updates Telegram delivers to the ones the bot handles.
var AllowedUpdates = []string{"message", "callback_query"}

// UpdateSource delivers Bot API updates through long polling.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Dispatcher handles one update.
type Dispatcher interface {
	Handle(ctx context.Context, u bot.Update) gate.Outcome
}

// UpdatePoller reads updates and hands them to the dispatcher one at a time,
// so updates of a chat are processed in arrival order.
type UpdatePoller struct {
	source     UpdateSource
	dispatcher Dispatcher
	timeout    time.Duration
	logger     *slog.Logger

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewUpdatePoller constructs the long polling worker.
func NewUpdatePoller(source UpdateSource, dispatcher Dispatcher, timeout time.Duration, logger *slog.Logger) *UpdatePoller {
	if timeout < time.Second {
		timeout = time.Second
	}
	return &UpdatePoller{
		source:     source,
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger,
	}
}

// Start launches background polling. Calling Start twice is a no-op.
func (p *UpdatePoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(p.timeout / time.Second)
	cfg.AllowedUpdates = AllowedUpdates
	updates := p.source.GetUpdatesChan(cfg)

	p.wg.Add(1)
	go p.run(runCtx, updates)
}

// Stop stops polling and waits for the update in progress.
func (p *UpdatePoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.cancel = nil
	p.running = false
	p.mu.Unlock()

	p.source.StopReceivingUpdates()
	p.wg.Wait()
}

func (p *UpdatePoller) run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			p.dispatch(ctx, u)
		}
	}
}

func (p *UpdatePoller) dispatch(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("update handler panicked",
				slog.Int("update_id", u.UpdateID),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	p.dispatcher.Handle(ctx, bot.FromTelegram(u))
}
