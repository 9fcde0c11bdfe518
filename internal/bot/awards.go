package bot

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/storage/state"
	"github.com/ERTG-BOTS/AchieverBot/internal/usecase"
)

func (h *Handler) allAwards(ctx context.Context, r *request, page int) error {
	awards, err := r.set.Redemption.Catalog(ctx)
	if err != nil {
		return err
	}
	total := usecase.TotalPages(len(awards), usecase.PageSize)
	p := usecase.Paginate(awards, usecase.ClampPage(page, total), usecase.PageSize)
	r.logger.Info("award catalog opened", slog.Int("page", p.Number))
	return h.show(ctx, r, textAllAwards(p), AwardsListKeyboard(MenuAll, p.Number, total))
}

func (h *Handler) available(ctx context.Context, r *request, page int) error {
	offers, err := r.set.Redemption.Available(ctx, r.user)
	if err != nil {
		return err
	}
	total := usecase.TotalPages(len(offers.Awards), usecase.PageSize)
	p := usecase.Paginate(offers.Awards, usecase.ClampPage(page, total), usecase.PageSize)
	r.logger.Info("available awards opened", slog.Int("page", p.Number), slog.Int64("balance", offers.Balance))
	return h.show(ctx, r, textAvailable(offers.Balance, p), AvailableKeyboard(p.Items, p.Number, total))
}

func (h *Handler) executed(ctx context.Context, r *request, page int) error {
	executes, err := r.set.Profile.Executed(ctx, r.user.ChatID)
	if err != nil {
		return err
	}
	total := usecase.TotalPages(len(executes), usecase.PageSize)
	p := usecase.Paginate(executes, usecase.ClampPage(page, total), usecase.PageSize)
	return h.show(ctx, r, textExecuted(p), AwardsListKeyboard(MenuExecuted, p.Number, total))
}

// rejectSelection alerts the reason a selection is no longer valid and returns the
// conversation to browsing. Errors it does not recognise are returned unchanged.
func (h *Handler) rejectSelection(ctx context.Context, r *request, awardID int64, err error) error {
	var insufficient *domainErrors.InsufficientBalanceError
	switch {
	case errors.As(err, &insufficient):
		h.alert(ctx, r, textInsufficient(insufficient.Need, insufficient.Have))
	case errors.Is(err, domainErrors.ErrAwardUnavailable):
		h.alert(ctx, r, textAwardUnavailable)
	case errors.Is(err, domainErrors.ErrNotOnShift):
		h.alert(ctx, r, textNotOnShift)
	default:
		return err
	}
	r.conv.FinishRedemption()
	r.logger.Info("award selection rejected", slog.Int64("award_id", awardID), slog.String("reason", err.Error()))
	return nil
}

func (h *Handler) selectAward(ctx context.Context, r *request, awardID int64) error {
	preview, err := r.set.Redemption.Select(ctx, r.user, awardID)
	if err != nil {
		return h.rejectSelection(ctx, r, awardID, err)
	}

	r.conv.Select(awardID)
	r.logger.Info("award selected", slog.Int64("award_id", awardID), slog.String("award", preview.Award.Name))
	return h.show(ctx, r, textPreview(preview), ConfirmKeyboard(awardID))
}

// confirm accepts only the award of the preview the conversation is on.
func (h *Handler) confirm(ctx context.Context, r *request, awardID int64) error {
	if r.conv.Stage != state.StageSelected || r.conv.AwardID != awardID {
		return h.rejectSelection(ctx, r, awardID, domainErrors.ErrAwardUnavailable)
	}

	preview, err := r.set.Redemption.Confirm(ctx, r.user, awardID)
	if err != nil {
		return h.rejectSelection(ctx, r, awardID, err)
	}

	award := preview.Award
	r.conv.Confirm(award.ID)
	r.conv.AwaitComment(award.ID, r.MessageID)
	r.logger.Info("award confirmed, waiting for comment", slog.Int64("award_id", award.ID))
	return h.show(ctx, r, textCommentPrompt(&award), AwardsBackKeyboard())
}

// comment persists the redemption. Replies and the notice wait for the commit.
func (h *Handler) comment(ctx context.Context, r *request) error {
	if err := h.sender.Delete(ctx, r.ChatID, r.MessageID); err != nil {
		r.logger.Warn("delete comment message failed", slog.String("error", err.Error()))
	}

	awardID := r.conv.AwardID
	prompt := r.conv.PromptMessageID
	receipt, err := r.set.Redemption.Complete(ctx, r.user, awardID, r.Text)
	if err != nil {
		var (
			text         string
			insufficient *domainErrors.InsufficientBalanceError
		)
		switch {
		case errors.Is(err, domainErrors.ErrAwardUnavailable), errors.Is(err, domainErrors.ErrNoAward):
			text = textAwardUnavailable
		case errors.As(err, &insufficient):
			text = textInsufficient(insufficient.Need, insufficient.Have)
		case errors.Is(err, domainErrors.ErrNotOnShift):
			text = textNotOnShift
		case errors.Is(err, domainErrors.ErrUnknownInteraction):
			r.logger.Error("award has no responsible party", slog.Int64("award_id", awardID), slog.String("error", err.Error()))
			text = textRedemptionFailed
		default:
			return err
		}
		r.conv.FinishRedemption()
		_, err = h.sender.Send(ctx, r.ChatID, text, MainKeyboard(r.conv.Overridden()))
		return err
	}

	r.conv.FinishRedemption()
	r.scope.OnCommit(func(ctx context.Context) {
		r.logger.Info("award purchased",
			slog.Int64("award_id", awardID),
			slog.Int64("execute_id", receipt.Execute.ID),
			slog.String("party", string(receipt.Party)),
		)
		r.set.Redemption.Notify(ctx, receipt)

		if err := h.sender.Sticker(ctx, r.ChatID, stickerPurchase); err != nil {
			r.logger.Warn("send sticker failed", slog.String("error", err.Error()))
		}
		var err error
		if prompt != 0 {
			err = h.sender.Edit(ctx, r.ChatID, prompt, textReceipt(receipt), nil)
		} else {
			_, err = h.sender.Send(ctx, r.ChatID, textReceipt(receipt), nil)
		}
		if err != nil {
			r.logger.Warn("send receipt failed", slog.String("error", err.Error()))
		}
		if err := h.greet(ctx, r); err != nil {
			r.logger.Warn("send main menu failed", slog.String("error", err.Error()))
		}
	})
	return nil
}
