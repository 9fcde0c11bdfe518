package repository

import (
	"context"
	"time"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
)

// AccrualRepository reads the credit ledger.
type AccrualRepository interface {
	SumByChatID(ctx context.Context, chatID int64) (int64, error)
	ListByUser(ctx context.Context, chatID int64, fullName string) ([]model.Accrual, error)
}

// ExecuteRepository manages the debit ledger.
type ExecuteRepository interface {
	SumByChatID(ctx context.Context, chatID int64) (int64, error)
	Create(ctx context.Context, execute *model.Execute) (*model.Execute, error)
	ListByChatID(ctx context.Context, chatID int64) ([]model.Execute, error)
	CountUsedSince(ctx context.Context, chatID int64, name string, since time.Time) (int, error)
}

// AwardRepository reads the award catalog.
type AwardRepository interface {
	List(ctx context.Context) ([]model.Award, error)
	ListAffordable(ctx context.Context, balance int64) ([]model.Award, error)
	GetByID(ctx context.Context, id int64) (*model.Award, error)
}
