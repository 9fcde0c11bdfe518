package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/gate"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/state"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

// Commands understood by the bot.
const (
	CommandStart = "start"
	CommandReset = "reset"
)

// Handler routes updates to the screens of the bot. Every update runs inside the gate.
type Handler struct {
	gate     *gate.Gate
	usecases *usecase.Factory
	states   state.Store
	sender   Sender
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewHandler constructs Handler. m may be nil.
func NewHandler(g *gate.Gate, f *usecase.Factory, states state.Store, sender Sender, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		gate:     g,
		usecases: f,
		states:   states,
		sender:   sender,
		metrics:  m,
		logger:   logger,
	}
}

// request is the per-update context shared by the screens.
type request struct {
	Update
	cb     Callback
	user   *model.User
	set    *usecase.Set
	scope  *gate.Scope
	key    state.Key
	loaded state.Conversation
	conv   state.Conversation
	logger *slog.Logger

	answered bool
}

// Handle processes one update. The conversation is saved only when the interaction committed.
func (h *Handler) Handle(ctx context.Context, u Update) gate.Outcome {
	kind := u.Kind()
	h.metrics.ObserveUpdate(string(kind))

	if kind == KindOther || u.ChatID == 0 {
		return gate.Completed
	}

	var cb Callback
	if kind == KindCallback {
		if u.Data == Noop {
			h.answer(ctx, u.CallbackID, "")
			return gate.Completed
		}
		decoded, err := Decode(u.Data)
		if err != nil {
			h.logger.Warn("unknown callback", slog.Int64("chat_id", u.ChatID), slog.String("error", err.Error()))
			h.answer(ctx, u.CallbackID, "")
			return gate.Failed
		}
		cb = decoded
	}

	actor := gate.Actor{
		ChatID: u.ChatID,
		Reply: func(ctx context.Context, text string) error {
			_, err := h.sender.Send(ctx, u.ChatID, text, nil)
			return err
		},
	}

	var req *request
	outcome := h.gate.Run(ctx, actor, func(ctx context.Context, scope *gate.Scope) error {
		r, err := h.newRequest(ctx, u, cb, scope)
		if err != nil {
			return err
		}
		req = r
		return h.route(ctx, r)
	})

	if outcome == gate.Completed && req != nil {
		h.persist(ctx, req)
	}
	if kind == KindCallback && (req == nil || !req.answered) {
		h.answer(ctx, u.CallbackID, "")
	}
	return outcome
}

func (h *Handler) newRequest(ctx context.Context, u Update, cb Callback, scope *gate.Scope) (*request, error) {
	key := state.Key{ChatID: u.ChatID, UserID: u.UserID}
	conv, err := h.states.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return &request{
		Update: u,
		cb:     cb,
		user:   scope.User,
		set:    h.usecases.For(scope.Primary, scope.Secondary),
		scope:  scope,
		key:    key,
		loaded: conv,
		conv:   conv,
		logger: scope.Logger().With(slog.String("update", string(u.Kind()))),
	}, nil
}

func (h *Handler) route(ctx context.Context, r *request) error {
	if r.user == nil {
		return h.unregistered(ctx, r)
	}

	switch r.Kind() {
	case KindCommand:
		switch r.Command {
		case CommandStart:
			return h.start(ctx, r)
		case CommandReset:
			return h.resetCommand(ctx, r)
		}
		r.logger.Debug("unknown command", slog.String("command", r.Command))
	case KindMessage:
		switch {
		case r.conv.AwaitingComment():
			return h.comment(ctx, r)
		case r.conv.AwaitingSearch && r.user.Role.IsAdmin():
			return h.searchResult(ctx, r)
		}
		r.logger.Debug("message ignored")
	case KindCallback:
		return h.callback(ctx, r)
	}
	return nil
}

func (h *Handler) callback(ctx context.Context, r *request) error {
	cb := r.cb
	if !(cb.Scope == ScopeAwards && cb.Menu == MenuConfirm) && r.conv.AwaitingComment() {
		r.conv.FinishRedemption()
	}
	if !(cb.Scope == ScopeAdmin && cb.Menu == MenuSearch) {
		r.conv.AwaitingSearch = false
	}

	switch cb.Scope {
	case ScopeMain:
		switch cb.Menu {
		case MenuMain:
			return h.mainMenu(ctx, r)
		case MenuLevel:
			return h.profile(ctx, r)
		case MenuFAQ:
			return h.show(ctx, r, textFAQ, BackKeyboard())
		case MenuAchievements:
			return h.show(ctx, r, textAchievements, AchievementsKeyboard())
		case MenuAwards:
			r.logger.Info("awards menu opened")
			return h.show(ctx, r, textAwards, AwardsKeyboard())
		}
	case ScopeAwards:
		switch cb.Menu {
		case MenuAvailable:
			return h.available(ctx, r, cb.Page)
		case MenuExecuted:
			return h.executed(ctx, r, cb.Page)
		case MenuAll:
			return h.allAwards(ctx, r, cb.Page)
		case MenuConfirm:
			return h.confirm(ctx, r, cb.Award)
		}
	case ScopeAvail:
		return h.available(ctx, r, cb.Page)
	case ScopeSelect:
		return h.selectAward(ctx, r, cb.Award)
	case ScopeAch:
		return h.accruals(ctx, r, cb.Page)
	case ScopeAdmin:
		switch cb.Menu {
		case MenuSearch:
			return h.searchPrompt(ctx, r)
		case MenuReset:
			return h.resetRole(ctx, r)
		}
	case ScopeRole:
		return h.switchRole(ctx, r, cb.Menu)
	}

	r.logger.Warn("unhandled callback", slog.String("scope", string(cb.Scope)), slog.String("menu", cb.Menu))
	return nil
}

// show edits the message a button belongs to and sends a new one otherwise.
func (h *Handler) show(ctx context.Context, r *request, text string, kb *Keyboard) error {
	if r.Kind() == KindCallback && r.MessageID != 0 {
		return h.sender.Edit(ctx, r.ChatID, r.MessageID, text, kb)
	}
	_, err := h.sender.Send(ctx, r.ChatID, text, kb)
	return err
}

// alert answers the pressed button with a toast.
func (h *Handler) alert(ctx context.Context, r *request, text string) {
	r.answered = true
	h.answer(ctx, r.CallbackID, text)
}

func (h *Handler) answer(ctx context.Context, callbackID, text string) {
	if callbackID == "" {
		return
	}
	if err := h.sender.Answer(ctx, callbackID, text); err != nil {
		h.logger.Warn("answer callback failed", slog.String("error", err.Error()))
	}
}

func (h *Handler) persist(ctx context.Context, r *request) {
	var err error
	switch {
	case r.conv == r.loaded:
		return
	case r.conv == (state.Conversation{}):
		err = h.states.Clear(ctx, r.key)
	default:
		err = h.states.Save(ctx, r.key, r.conv)
	}
	if err != nil {
		r.logger.Error("save conversation failed", slog.String("error", err.Error()))
	}
}

func (h *Handler) unregistered(ctx context.Context, r *request) error {
	r.logger.Info("update from unregistered user", slog.String("username", r.Username))
	if r.Kind() == KindCallback {
		h.alert(ctx, r, textUnregisteredCB)
		return nil
	}
	_, err := h.sender.Send(ctx, r.ChatID, textUnregistered(r.Username), nil)
	return err
}
