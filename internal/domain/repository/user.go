package repository

import (
	"context"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
)

// DefaultSearchLimit caps fuzzy name search results.
const DefaultSearchLimit = 10

// UserRepository describes lookups of registered staff.
type UserRepository interface {
	GetByChatID(ctx context.Context, chatID int64) (*model.User, error)
	GetByFullName(ctx context.Context, fullName string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SearchByNameParts(ctx context.Context, query string, limit int) ([]model.User, error)
}

// ScheduleRepository answers questions about the shift schedule.
type ScheduleRepository interface {
	IsWorkingToday(ctx context.Context, fullName, division string) (bool, error)
}
