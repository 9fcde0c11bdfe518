package model

// Accrual is an immutable credit entry awarding points for an achievement.
type Accrual struct {
	ID        int64
	ChatID    int64
	FullName  string
	Name      string
	TargetKPI string
	Points    int64
	Period    string
	Date      string
}
