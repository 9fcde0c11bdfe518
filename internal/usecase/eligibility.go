package usecase

import "github.com/ERTG-BOTS/AchieverBot/internal/domain/model"

// Eligible reports whether award can be redeemed with balance.
// A nil onShift means the schedule was not consulted; shift dependent awards then stay eligible.
func Eligible(award model.Award, balance int64, onShift *bool) bool {
	if award.Cost > balance {
		return false
	}
	if award.ShiftDependent && onShift != nil && !*onShift {
		return false
	}
	return true
}

// EligibleAwards keeps the awards of the catalog that pass Eligible, in catalog order.
func EligibleAwards(awards []model.Award, balance int64, onShift *bool) []model.Award {
	result := make([]model.Award, 0, len(awards))
	for _, a := range awards {
		if Eligible(a, balance, onShift) {
			result = append(result, a)
		}
	}
	return result
}
