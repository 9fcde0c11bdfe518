package bot

import (
	"context"
	"log/slog"

	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

func (h *Handler) start(ctx context.Context, r *request) error {
	r.conv.FinishRedemption()
	r.conv.AwaitingSearch = false

	if r.user.Role.IsAdmin() && !r.conv.Overridden() {
		r.logger.Info("admin menu opened")
		_, err := h.sender.Send(ctx, r.ChatID, textAdminGreeting(r.user), AdminKeyboard())
		return err
	}
	return h.greet(ctx, r)
}

// greet sends the sticker and the user menu as a new message.
func (h *Handler) greet(ctx context.Context, r *request) error {
	if err := h.sender.Sticker(ctx, r.ChatID, stickerGreeting); err != nil {
		r.logger.Warn("send sticker failed", slog.String("error", err.Error()))
	}
	role := r.conv.EffectiveRole(r.user)
	_, err := h.sender.Send(ctx, r.ChatID, textGreeting(r.user, role, r.conv.Overridden()), MainKeyboard(r.conv.Overridden()))
	return err
}

func (h *Handler) mainMenu(ctx context.Context, r *request) error {
	role := r.conv.EffectiveRole(r.user)
	return h.show(ctx, r, textGreeting(r.user, role, r.conv.Overridden()), MainKeyboard(r.conv.Overridden()))
}

func (h *Handler) profile(ctx context.Context, r *request) error {
	balance, err := r.set.Profile.Profile(ctx, r.user.ChatID)
	if err != nil {
		return err
	}
	return h.show(ctx, r, textProfile(balance), BackKeyboard())
}

func (h *Handler) accruals(ctx context.Context, r *request, page int) error {
	history, err := r.set.Profile.History(ctx, r.user)
	if err != nil {
		return err
	}
	total := usecase.TotalPages(len(history), usecase.PageSize)
	p := usecase.Paginate(history, usecase.ClampPage(page, total), usecase.PageSize)
	return h.show(ctx, r, textAccruals(p), AccrualsKeyboard(p.Number, total))
}
