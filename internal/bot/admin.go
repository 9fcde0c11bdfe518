package bot

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/state"
)

func (h *Handler) requireAdmin(ctx context.Context, r *request) bool {
	if r.user.Role.IsAdmin() {
		return true
	}
	r.logger.Warn("admin action denied", slog.Int("role", int(r.user.Role)))
	h.alert(ctx, r, textAdminOnly)
	return false
}

func (h *Handler) searchPrompt(ctx context.Context, r *request) error {
	if !h.requireAdmin(ctx, r) {
		return nil
	}
	r.conv.FinishRedemption()
	r.conv.AwaitingSearch = true
	return h.show(ctx, r, textSearchPrompt, nil)
}

func (h *Handler) searchResult(ctx context.Context, r *request) error {
	r.conv.AwaitingSearch = false

	result, err := r.set.Search.Search(ctx, r.Text)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidSearch) {
			_, err = h.sender.Send(ctx, r.ChatID, textInvalidSearch, nil)
			return err
		}
		return err
	}

	r.logger.Info("staff search",
		slog.String("kind", result.Kind.String()),
		slog.Int("found", len(result.Users)),
	)
	_, err = h.sender.Send(ctx, r.ChatID, textSearchResult(result), nil)
	return err
}

func (h *Handler) switchRole(ctx context.Context, r *request, menu string) error {
	if !h.requireAdmin(ctx, r) {
		return nil
	}
	role, ok := presetRole(menu)
	if !ok {
		r.logger.Warn("unknown role preset", slog.String("preset", menu))
		return nil
	}

	r.logger.Info("role changed", slog.Int("from", int(r.conv.EffectiveRole(r.user))), slog.Int("to", int(role)))
	r.conv.RoleOverride = role
	return h.mainMenu(ctx, r)
}

// resetRole drops the override and the whole conversation.
func (h *Handler) resetRole(ctx context.Context, r *request) error {
	if !h.requireAdmin(ctx, r) {
		return nil
	}
	r.logger.Info("role reset", slog.Int("from", int(r.conv.EffectiveRole(r.user))), slog.Int("to", int(r.user.Role)))
	r.conv = state.Conversation{}
	return h.show(ctx, r, textAdminGreeting(r.user), AdminKeyboard())
}

func (h *Handler) resetCommand(ctx context.Context, r *request) error {
	if !r.user.Role.IsAdmin() {
		return h.start(ctx, r)
	}
	return h.resetRole(ctx, r)
}
