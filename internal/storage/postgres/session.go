package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Session exposes the repositories of one transaction.
type Session struct {
	tx     pgx.Tx
	logger *slog.Logger
}

func (s *Session) Users() repository.UserRepository {
	return &userRepository{db: s.tx}
}

func (s *Session) Schedule() repository.ScheduleRepository {
	return &scheduleRepository{db: s.tx}
}

func (s *Session) Accruals() repository.AccrualRepository {
	return &accrualRepository{db: s.tx}
}

func (s *Session) Awards() repository.AwardRepository {
	return &awardRepository{db: s.tx}
}

func (s *Session) Executes() repository.ExecuteRepository {
	return &executeRepository{db: s.tx}
}

// Commit finishes the transaction.
func (s *Session) Commit(ctx context.Context) error {
	return s.tx.Commit(ctx)
}

// Rollback aborts the transaction. Rolling back a finished transaction is a no-op.
func (s *Session) Rollback(ctx context.Context) error {
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
