package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

const userColumns = `chat_id, COALESCE(username, ''), fullname, role, COALESCE(division, ''),
       COALESCE(position, ''), COALESCE(boss, ''), COALESCE(email, '')`

type userRepository struct {
	db querier
}

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ChatID, &u.Username, &u.FullName, &u.Role, &u.Division, &u.Position, &u.Boss, &u.Email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1`
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByChatID(ctx context.Context, chatID int64) (*model.User, error) {
	return r.getOne(ctx, "chat_id=$1", chatID)
}

func (r *userRepository) GetByFullName(ctx context.Context, fullName string) (*model.User, error) {
	return r.getOne(ctx, "fullname=$1", fullName)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "username=$1", strings.TrimPrefix(username, "@"))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "email=$1", email)
}

// SearchByNameParts returns users whose full name contains every token of query.
func (r *userRepository) SearchByNameParts(ctx context.Context, query string, limit int) ([]model.User, error) {
	parts := strings.Fields(query)
	if len(parts) == 0 {
		return []model.User{}, nil
	}
	if limit <= 0 {
		limit = repository.DefaultSearchLimit
	}

	conditions := make([]string, 0, len(parts))
	args := make([]any, 0, len(parts)+1)
	for i, part := range parts {
		conditions = append(conditions, fmt.Sprintf(`fullname ILIKE $%d ESCAPE '\'`, i+1))
		args = append(args, "%"+escapeLike(part)+"%")
	}
	args = append(args, limit)

	sql := `SELECT ` + userColumns + ` FROM users WHERE ` + strings.Join(conditions, " AND ") +
		fmt.Sprintf(` LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type scheduleRepository struct {
	db querier
}

func (r *scheduleRepository) IsWorkingToday(ctx context.Context, fullName, division string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM schedule WHERE fullname=$1 AND division=$2 AND work_date=CURRENT_DATE
    )`
	var working bool
	if err := r.db.QueryRow(ctx, query, fullName, division).Scan(&working); err != nil {
		return false, err
	}
	return working, nil
}
