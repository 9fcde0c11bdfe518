package usecase

import (
	"context"
	"fmt"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

// BalanceUseCase derives the points balance from both ledgers.
type BalanceUseCase struct {
	accruals repository.AccrualRepository
	executes repository.ExecuteRepository
}

// NewBalanceUseCase constructs BalanceUseCase.
func NewBalanceUseCase(a repository.AccrualRepository, e repository.ExecuteRepository) *BalanceUseCase {
	return &BalanceUseCase{accruals: a, executes: e}
}

// Summary returns credits and debits of chatID. Both aggregates are read independently
// and nothing is cached, so every caller sees the ledgers as of its own read.
func (u *BalanceUseCase) Summary(ctx context.Context, chatID int64) (model.Balance, error) {
	credits, err := u.accruals.SumByChatID(ctx, chatID)
	if err != nil {
		return model.Balance{}, fmt.Errorf("sum accruals: %w", err)
	}
	debits, err := u.executes.SumByChatID(ctx, chatID)
	if err != nil {
		return model.Balance{}, fmt.Errorf("sum executes: %w", err)
	}
	return model.Balance{Credits: credits, Debits: debits}, nil
}
