package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ERTG-BOTS/AchieverBot/internal/config"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	testhelpers "github.com/ERTG-BOTS/AchieverBot/internal/test"
)

var fixedNow = time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC)

type notifierStub struct {
	sent []model.Redemption
	err  error
}

func (n *notifierStub) NotifyRedemption(_ context.Context, r model.Redemption) error {
	n.sent = append(n.sent, r)
	return n.err
}

type fixture struct {
	primary   *testhelpers.SessionStub
	secondary *testhelpers.SessionStub
	notifier  *notifierStub
	set       *Set
}

func newFixture(cfg *config.Config) *fixture {
	if cfg == nil {
		cfg = &config.Config{}
	}
	f := &fixture{
		primary:   testhelpers.NewSessionStub(),
		secondary: testhelpers.NewSessionStub(),
		notifier:  &notifierStub{},
	}
	factory := NewFactory(cfg, f.notifier, nil, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	factory.now = func() time.Time { return fixedNow }
	f.set = factory.For(f.primary, f.secondary)
	return f
}

func specialist() *model.User {
	return &model.User{
		ChatID:   42,
		FullName: "Иванов Иван Иванович",
		Role:     model.RoleSpecialist,
		Division: "НТП",
		Position: "Специалист первой линии",
		Boss:     "Петров Пётр Петрович",
		Email:    "ivanov@example.com",
	}
}
