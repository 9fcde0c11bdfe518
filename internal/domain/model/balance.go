package model

import "math"

// Balance aggregates the credit and debit ledgers of a user.
type Balance struct {
	Credits int64
	Debits  int64
}

// Current returns the spendable amount.
func (b Balance) Current() int64 {
	return b.Credits - b.Debits
}

// Level is one per hundred accrued points, halves rounded to even.
func (b Balance) Level() int64 {
	return int64(math.RoundToEven(float64(b.Credits) / 100))
}
