package model

import "time"

// Execute is a redemption record. Executing holds the encoded
// responsible-party code which also counts as the amount spent.
type Execute struct {
	ID            int64
	ChatID        int64
	FullName      string
	Name          string
	Executing     int64
	Position      string
	Count         int
	TargetCount   int
	Date          time.Time
	ExecutingDate *time.Time
	WhoExecuting  *string
	Comment       string
}

// Pending reports whether no administrator has activated the redemption yet.
func (e *Execute) Pending() bool {
	return e.ExecutingDate == nil
}
