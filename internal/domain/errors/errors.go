package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrAwardUnavailable    = errors.New("award unavailable")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotOnShift          = errors.New("user is not on shift")
	ErrUnknownInteraction  = errors.New("unknown award interaction")
	ErrInvalidSearch       = errors.New("invalid search query")
	ErrNoAward             = errors.New("no award in progress")
)

// InsufficientBalanceError carries the amounts of a rejected selection.
type InsufficientBalanceError struct {
	Need int64
	Have int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %d, have %d", e.Need, e.Have)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
