package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
)

// --- AccrualRepository implementation ---

type accrualRepository struct {
	db querier
}

func (r *accrualRepository) SumByChatID(ctx context.Context, chatID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(points), 0) FROM accruals WHERE chat_id=$1`
	var total int64
	if err := r.db.QueryRow(ctx, query, chatID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}

func (r *accrualRepository) ListByUser(ctx context.Context, chatID int64, fullName string) ([]model.Accrual, error) {
	const query = `SELECT id, chat_id, fullname, name, target_kpi, points, period, date
                   FROM accruals WHERE chat_id=$1 OR fullname=$2 ORDER BY id`
	rows, err := r.db.Query(ctx, query, chatID, fullName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Accrual
	for rows.Next() {
		var a model.Accrual
		if err := rows.Scan(&a.ID, &a.ChatID, &a.FullName, &a.Name, &a.TargetKPI, &a.Points, &a.Period, &a.Date); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AwardRepository implementation ---

const awardColumns = `id, name, cost, in_charge, count, description, shift_dependent`

type awardRepository struct {
	db querier
}

func scanAward(row scanner) (*model.Award, error) {
	var a model.Award
	if err := row.Scan(&a.ID, &a.Name, &a.Cost, &a.Interaction, &a.Count, &a.Description, &a.ShiftDependent); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *awardRepository) list(ctx context.Context, query string, args ...any) ([]model.Award, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Award
	for rows.Next() {
		a, err := scanAward(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *awardRepository) List(ctx context.Context) ([]model.Award, error) {
	const query = `SELECT ` + awardColumns + ` FROM awards WHERE name <> '' ORDER BY id`
	return r.list(ctx, query)
}

func (r *awardRepository) ListAffordable(ctx context.Context, balance int64) ([]model.Award, error) {
	const query = `SELECT ` + awardColumns + ` FROM awards WHERE name <> '' AND cost <= $1 ORDER BY id`
	return r.list(ctx, query, balance)
}

func (r *awardRepository) GetByID(ctx context.Context, id int64) (*model.Award, error) {
	const query = `SELECT ` + awardColumns + ` FROM awards WHERE id=$1`
	a, err := scanAward(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// --- ExecuteRepository implementation ---

type executeRepository struct {
	db querier
}

func (r *executeRepository) SumByChatID(ctx context.Context, chatID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(executing), 0) FROM executed WHERE chat_id=$1`
	var total int64
	if err := r.db.QueryRow(ctx, query, chatID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}

func (r *executeRepository) Create(ctx context.Context, e *model.Execute) (*model.Execute, error) {
	const query = `INSERT INTO executed (chat_id, fullname, name, executing, position, count, target_count, date, comment)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id`
	created := *e
	err := r.db.QueryRow(ctx, query,
		e.ChatID, e.FullName, e.Name, e.Executing, e.Position, e.Count, e.TargetCount, e.Date, e.Comment,
	).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *executeRepository) ListByChatID(ctx context.Context, chatID int64) ([]model.Execute, error) {
	const query = `SELECT id, chat_id, fullname, name, executing, position, count, target_count,
                          date, executing_date, who_executing, COALESCE(comment, '')
                   FROM executed WHERE chat_id=$1 ORDER BY date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Execute
	for rows.Next() {
		var e model.Execute
		if err := rows.Scan(&e.ID, &e.ChatID, &e.FullName, &e.Name, &e.Executing, &e.Position, &e.Count,
			&e.TargetCount, &e.Date, &e.ExecutingDate, &e.WhoExecuting, &e.Comment); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountUsedSince counts fully used redemptions of name (every use spent) dated since or later.
func (r *executeRepository) CountUsedSince(ctx context.Context, chatID int64, name string, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM executed WHERE chat_id=$1 AND name=$2 AND target_count = count AND date >= $3`
	var count int
	if err := r.db.QueryRow(ctx, query, chatID, name, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
