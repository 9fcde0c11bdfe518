package model

// Redemption describes a persisted award purchase handed to the notifier.
type Redemption struct {
	User       *User
	Supervisor *User
	Award      *Award
	Execute    *Execute
}
