package repository

import "context"

// Session is a transaction scoped view over one data store.
type Session interface {
	Users() UserRepository
	Schedule() ScheduleRepository
	Accruals() AccrualRepository
	Awards() AwardRepository
	Executes() ExecuteRepository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store opens sessions against a data store.
type Store interface {
	Begin(ctx context.Context) (Session, error)
}

// Stores groups the two independent data stores of the bot.
// Primary holds staff records and schedules, Secondary holds the points ledgers and the catalog.
type Stores struct {
	Primary   Store
	Secondary Store
}
