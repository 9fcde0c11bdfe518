package usecase

import (
	"context"
	"fmt"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

// ProfileUseCase serves the profile screens.
type ProfileUseCase struct {
	balance  *BalanceUseCase
	accruals repository.AccrualRepository
	executes repository.ExecuteRepository
}

// Profile returns the balance, which also carries the level.
func (u *ProfileUseCase) Profile(ctx context.Context, chatID int64) (model.Balance, error) {
	return u.balance.Summary(ctx, chatID)
}

// History lists the accruals of user, matched by chat or by full name.
func (u *ProfileUseCase) History(ctx context.Context, user *model.User) ([]model.Accrual, error) {
	accruals, err := u.accruals.ListByUser(ctx, user.ChatID, user.FullName)
	if err != nil {
		return nil, fmt.Errorf("list accruals: %w", err)
	}
	return accruals, nil
}

// Executed lists the redemptions of chatID, newest first.
func (u *ProfileUseCase) Executed(ctx context.Context, chatID int64) ([]model.Execute, error) {
	executes, err := u.executes.ListByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list executes: %w", err)
	}
	return executes, nil
}
