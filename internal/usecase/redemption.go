package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
	"github.com/ERTG-BOTS/AchieverBot/internal/metrics"
)

// Notifier delivers redemption notices to the responsible people.
type Notifier interface {
	NotifyRedemption(ctx context.Context, r model.Redemption) error
}

// RedemptionPolicy holds the switches of the redemption workflow.
type RedemptionPolicy struct {
	NotifySupervisor bool
	OncePerMonth     bool
}

// Offers is the list of awards the user can pay for right now.
type Offers struct {
	Balance int64
	Awards  []model.Award
}

// Preview is shown before the user confirms a selection.
type Preview struct {
	Award     model.Award
	Balance   int64
	Remaining int64
}

// Receipt describes a persisted redemption.
type Receipt struct {
	Award         model.Award
	Execute       model.Execute
	Party         model.Party
	BalanceBefore int64
	Remaining     int64
	Redemption    model.Redemption
}

// RedemptionUseCase drives an award from selection to the persisted Execute record.
type RedemptionUseCase struct {
	balance  *BalanceUseCase
	awards   repository.AwardRepository
	executes repository.ExecuteRepository
	schedule repository.ScheduleRepository
	users    repository.UserRepository
	notifier Notifier
	policy   RedemptionPolicy
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// Available lists the affordable awards of user together with the balance they were filtered by.
func (u *RedemptionUseCase) Available(ctx context.Context, user *model.User) (Offers, error) {
	balance, err := u.balance.Summary(ctx, user.ChatID)
	if err != nil {
		return Offers{}, err
	}
	current := balance.Current()
	affordable, err := u.awards.ListAffordable(ctx, current)
	if err != nil {
		return Offers{}, fmt.Errorf("list affordable awards: %w", err)
	}
	return Offers{Balance: current, Awards: EligibleAwards(affordable, current, nil)}, nil
}

// Catalog lists every award in catalog order.
func (u *RedemptionUseCase) Catalog(ctx context.Context) ([]model.Award, error) {
	awards, err := u.awards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return awards, nil
}

// Select re-validates a choice made from a rendered list. The balance and the schedule
// may have changed since the list was shown.
func (u *RedemptionUseCase) Select(ctx context.Context, user *model.User, awardID int64) (*Preview, error) {
	offers, err := u.Available(ctx, user)
	if err != nil {
		return nil, err
	}

	var selected *model.Award
	for i := range offers.Awards {
		if offers.Awards[i].ID == awardID {
			selected = &offers.Awards[i]
			break
		}
	}
	if selected == nil {
		return nil, domainErrors.ErrAwardUnavailable
	}
	if selected.Cost > offers.Balance {
		return nil, &domainErrors.InsufficientBalanceError{Need: selected.Cost, Have: offers.Balance}
	}

	award, err := u.canonical(ctx, awardID)
	if err != nil {
		return nil, err
	}

	if u.policy.OncePerMonth {
		used, err := u.executes.CountUsedSince(ctx, user.ChatID, award.Name, monthStart(u.now()))
		if err != nil {
			return nil, fmt.Errorf("count monthly redemptions: %w", err)
		}
		if used > 0 {
			return nil, domainErrors.ErrAwardUnavailable
		}
	}

	if award.ShiftDependent {
		working, err := u.schedule.IsWorkingToday(ctx, user.FullName, user.Division)
		if err != nil {
			return nil, fmt.Errorf("check schedule: %w", err)
		}
		if !Eligible(*award, offers.Balance, &working) {
			return nil, domainErrors.ErrNotOnShift
		}
	}

	return &Preview{Award: *award, Balance: offers.Balance, Remaining: offers.Balance - award.Cost}, nil
}

// Confirm repeats the checks of Select before the comment prompt is shown. A confirm
// button may outlive the preview it was rendered with.
func (u *RedemptionUseCase) Confirm(ctx context.Context, user *model.User, awardID int64) (*Preview, error) {
	return u.Select(ctx, user, awardID)
}

// Complete re-validates the award against the current balance and schedule, then
// persists exactly one Execute for awardID with comment attached.
// The notice is not sent here; see Notify.
func (u *RedemptionUseCase) Complete(ctx context.Context, user *model.User, awardID int64, comment string) (*Receipt, error) {
	if awardID == 0 {
		return nil, domainErrors.ErrNoAward
	}
	preview, err := u.Select(ctx, user, awardID)
	if err != nil {
		return nil, err
	}
	award := &preview.Award
	code, ok := model.InteractionCode(award.Interaction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrUnknownInteraction, award.Interaction)
	}

	var supervisor *model.User
	if u.policy.NotifySupervisor && user.Boss != "" {
		supervisor, err = u.users.GetByFullName(ctx, user.Boss)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("lookup supervisor: %w", err)
		}
	}

	created, err := u.executes.Create(ctx, &model.Execute{
		ChatID:      user.ChatID,
		FullName:    user.FullName,
		Name:        award.Name,
		Executing:   code,
		Position:    user.Position,
		Count:       0,
		TargetCount: award.Count,
		Date:        u.now(),
		Comment:     comment,
	})
	if err != nil {
		return nil, fmt.Errorf("create execute: %w", err)
	}

	before := preview.Balance
	return &Receipt{
		Award:         *award,
		Execute:       *created,
		Party:         model.ResponsibleParty(created.Executing, user),
		BalanceBefore: before,
		Remaining:     before - award.Cost,
		Redemption: model.Redemption{
			User:       user,
			Supervisor: supervisor,
			Award:      award,
			Execute:    created,
		},
	}, nil
}

// Notify hands the receipt to the notifier. Delivery failures are logged and dropped.
func (u *RedemptionUseCase) Notify(ctx context.Context, receipt *Receipt) {
	u.metrics.ObserveRedemption(string(receipt.Party))
	if u.notifier == nil {
		return
	}
	if err := u.notifier.NotifyRedemption(ctx, receipt.Redemption); err != nil {
		u.logger.Error("redemption notice failed",
			slog.Int64("execute_id", receipt.Execute.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (u *RedemptionUseCase) canonical(ctx context.Context, awardID int64) (*model.Award, error) {
	award, err := u.awards.GetByID(ctx, awardID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrAwardUnavailable
		}
		return nil, fmt.Errorf("get award: %w", err)
	}
	return award, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
