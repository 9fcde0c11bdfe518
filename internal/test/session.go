package test

import (
	"context"
	"sync"

	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

// SessionStub bundles repository stubs of one store.
type SessionStub struct {
	UsersRepo    *UserRepositoryStub
	ScheduleRepo *ScheduleRepositoryStub
	AccrualsRepo *AccrualRepositoryStub
	AwardsRepo   *AwardRepositoryStub
	ExecutesRepo *ExecuteRepositoryStub

	CommitErr error

	mu        sync.Mutex
	commits   int
	rollbacks int
}

// NewSessionStub returns a session with empty repositories.
func NewSessionStub() *SessionStub {
	return &SessionStub{
		UsersRepo:    &UserRepositoryStub{},
		ScheduleRepo: &ScheduleRepositoryStub{},
		AccrualsRepo: &AccrualRepositoryStub{},
		AwardsRepo:   &AwardRepositoryStub{},
		ExecutesRepo: &ExecuteRepositoryStub{},
	}
}

func (s *SessionStub) Users() repository.UserRepository        { return s.UsersRepo }
func (s *SessionStub) Schedule() repository.ScheduleRepository { return s.ScheduleRepo }
func (s *SessionStub) Accruals() repository.AccrualRepository  { return s.AccrualsRepo }
func (s *SessionStub) Awards() repository.AwardRepository      { return s.AwardsRepo }
func (s *SessionStub) Executes() repository.ExecuteRepository  { return s.ExecutesRepo }

// Commit counts commits and returns CommitErr.
func (s *SessionStub) Commit(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CommitErr != nil {
		return s.CommitErr
	}
	s.commits++
	return nil
}

// Rollback counts rollbacks.
func (s *SessionStub) Rollback(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollbacks++
	return nil
}

// Commits reports successful commits.
func (s *SessionStub) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Rollbacks reports rollbacks.
func (s *SessionStub) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// StoreStub hands out the same session, or fails through BeginFn.
type StoreStub struct {
	Session *SessionStub
	BeginFn func(ctx context.Context, attempt int) error

	mu     sync.Mutex
	begins int
}

// Begin returns Session unless BeginFn rejects the attempt.
func (s *StoreStub) Begin(ctx context.Context) (repository.Session, error) {
	s.mu.Lock()
	s.begins++
	attempt := s.begins
	s.mu.Unlock()

	if s.BeginFn != nil {
		if err := s.BeginFn(ctx, attempt); err != nil {
			return nil, err
		}
	}
	return s.Session, nil
}

// Begins reports how many sessions were requested.
func (s *StoreStub) Begins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begins
}

// NewStores builds both stores around fresh sessions.
func NewStores() (repository.Stores, *StoreStub, *StoreStub) {
	primary := &StoreStub{Session: NewSessionStub()}
	secondary := &StoreStub{Session: NewSessionStub()}
	return repository.Stores{Primary: primary, Secondary: secondary}, primary, secondary
}
