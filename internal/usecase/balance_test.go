package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestBalanceUseCaseSummary(t *testing.T) {
	tests := []struct {
		name    string
		credits int64
		debits  int64
		want    int64
	}{
		{"empty ledgers", 0, 0, 0},
		{"credits only", 150, 0, 150},
		{"credits and debits", 150, 30, 120},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(nil)
			f.secondary.AccrualsRepo.Sum = tc.credits
			f.secondary.ExecutesRepo.Sum = tc.debits

			balance, err := f.set.Balance.Summary(context.Background(), 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if balance.Current() != tc.want {
				t.Fatalf("expected balance %d, got %d", tc.want, balance.Current())
			}
		})
	}
}

func TestBalanceUseCasePropagatesErrors(t *testing.T) {
	f := newFixture(nil)
	boom := errors.New("boom")

	f.secondary.AccrualsRepo.Err = boom
	if _, err := f.set.Balance.Summary(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected accrual error, got %v", err)
	}

	f.secondary.AccrualsRepo.Err = nil
	f.secondary.ExecutesRepo.Err = boom
	if _, err := f.set.Balance.Summary(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected execute error, got %v", err)
	}
}
