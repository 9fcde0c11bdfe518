package model

// Award is a catalog entry redeemable for points.
type Award struct {
	ID             int64
	Name           string
	Cost           int64
	Interaction    string
	Count          int
	Description    string
	ShiftDependent bool
}
