package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"award unavailable", ErrAwardUnavailable},
		{"insufficient balance", ErrInsufficientBalance},
		{"not on shift", ErrNotOnShift},
		{"unknown interaction", ErrUnknownInteraction},
		{"invalid search", ErrInvalidSearch},
		{"no award", ErrNoAward},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestInsufficientBalanceErrorUnwraps(t *testing.T) {
	var err error = &InsufficientBalanceError{Need: 120, Have: 80}
	if !stdErrors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	var detail *InsufficientBalanceError
	if !stdErrors.As(err, &detail) || detail.Need != 120 || detail.Have != 80 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if err.Error() != "insufficient balance: need 120, have 80" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
