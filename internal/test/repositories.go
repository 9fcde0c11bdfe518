package test

import (
	"context"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
)

// UserRepositoryStub serves users from memory unless an override is set.
type UserRepositoryStub struct {
	Users []model.User
	Err   error

	GetByChatIDFn       func(context.Context, int64) (*model.User, error)
	SearchByNamePartsFn func(context.Context, string, int) ([]model.User, error)
}

func (s *UserRepositoryStub) find(match func(model.User) bool) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if match(u) {
			user := u
			return &user, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByChatID looks the user up by Telegram chat.
func (s *UserRepositoryStub) GetByChatID(ctx context.Context, chatID int64) (*model.User, error) {
	if s.GetByChatIDFn != nil {
		return s.GetByChatIDFn(ctx, chatID)
	}
	return s.find(func(u model.User) bool { return u.ChatID == chatID })
}

// GetByFullName looks the user up by exact full name.
func (s *UserRepositoryStub) GetByFullName(_ context.Context, fullName string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.FullName == fullName })
}

// GetByUsername looks the user up by Telegram username.
func (s *UserRepositoryStub) GetByUsername(_ context.Context, username string) (*model.User, error) {
	username = strings.TrimPrefix(username, "@")
	return s.find(func(u model.User) bool { return u.Username == username })
}

// GetByEmail looks the user up by email.
func (s *UserRepositoryStub) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Email == email })
}

// SearchByNameParts filters in-memory users with model.MatchesNameParts.
func (s *UserRepositoryStub) SearchByNameParts(ctx context.Context, query string, limit int) ([]model.User, error) {
	if s.SearchByNamePartsFn != nil {
		return s.SearchByNamePartsFn(ctx, query, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	result := []model.User{}
	if strings.TrimSpace(query) == "" {
		return result, nil
	}
	for _, u := range s.Users {
		if limit > 0 && len(result) >= limit {
			break
		}
		if model.MatchesNameParts(u.FullName, query) {
			result = append(result, u)
		}
	}
	return result, nil
}

// ScheduleRepositoryStub answers shift lookups.
type ScheduleRepositoryStub struct {
	Working bool
	Err     error
	Calls   int
}

// IsWorkingToday returns the configured answer.
func (s *ScheduleRepositoryStub) IsWorkingToday(context.Context, string, string) (bool, error) {
	s.Calls++
	return s.Working, s.Err
}

// AccrualRepositoryStub returns fixed credits.
type AccrualRepositoryStub struct {
	Sum      int64
	Accruals []model.Accrual
	Err      error
}

// SumByChatID returns Sum.
func (s *AccrualRepositoryStub) SumByChatID(context.Context, int64) (int64, error) {
	return s.Sum, s.Err
}

// ListByUser returns Accruals.
func (s *AccrualRepositoryStub) ListByUser(context.Context, int64, string) ([]model.Accrual, error) {
	return s.Accruals, s.Err
}

// AwardRepositoryStub serves a fixed catalog.
type AwardRepositoryStub struct {
	Awards []model.Award
	Err    error
}

// List returns the whole catalog.
func (s *AwardRepositoryStub) List(context.Context) ([]model.Award, error) {
	return s.Awards, s.Err
}

// ListAffordable returns awards costing at most balance.
func (s *AwardRepositoryStub) ListAffordable(_ context.Context, balance int64) ([]model.Award, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Award
	for _, a := range s.Awards {
		if a.Cost <= balance {
			result = append(result, a)
		}
	}
	return result, nil
}

// GetByID finds an award or reports not found.
func (s *AwardRepositoryStub) GetByID(_ context.Context, id int64) (*model.Award, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.Awards {
		if a.ID == id {
			award := a
			return &award, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ExecuteRepositoryStub records created redemptions.
type ExecuteRepositoryStub struct {
	mu sync.Mutex

	Sum       int64
	Executes  []model.Execute
	Count     int
	Err       error
	CreateErr error
	Next      int64

	CreateFn func(context.Context, *model.Execute) (*model.Execute, error)
}

// SumByChatID returns Sum plus the executing amounts created through the stub.
func (s *ExecuteRepositoryStub) SumByChatID(_ context.Context, chatID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	total := s.Sum
	for _, e := range s.Executes {
		if e.ChatID == chatID && e.ID != 0 {
			total += e.Executing
		}
	}
	return total, nil
}

// Create stores the record and assigns an identifier.
func (s *ExecuteRepositoryStub) Create(ctx context.Context, e *model.Execute) (*model.Execute, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, e)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.Next++
	created := *e
	created.ID = s.Next
	s.Executes = append(s.Executes, created)
	return &created, nil
}

// ListByChatID returns the records of chatID.
func (s *ExecuteRepositoryStub) ListByChatID(_ context.Context, chatID int64) ([]model.Execute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Execute
	for _, e := range s.Executes {
		if e.ChatID == chatID {
			result = append(result, e)
		}
	}
	return result, nil
}

// CountUsedSince returns Count.
func (s *ExecuteRepositoryStub) CountUsedSince(context.Context, int64, string, time.Time) (int, error) {
	return s.Count, s.Err
}

// Created returns a copy of the records created so far.
func (s *ExecuteRepositoryStub) Created() []model.Execute {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Execute(nil), s.Executes...)
}
