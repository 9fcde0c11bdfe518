package model

import "strings"

// Party is the group responsible for activating a redeemed award.
type Party string

const (
	PartyNCK           Party = "НЦК"
	PartyNTP1          Party = "НТП1"
	PartyNTP2          Party = "НТП2"
	PartyAdministrator Party = "Администратор"
	PartyQuality       Party = "ГОК"
	PartyMonitoring    Party = "МИП"
	PartyUnknown       Party = "Неизвестно"
)

// interactionCodes maps the award interaction label to the code stored in
// Execute.Executing. Routing reads the code modulo 7.
var interactionCodes = map[string]int64{
	"Дежурный":      3,
	"Старший":       3,
	"Администратор": 4,
	"ГОК":           5,
	"МИП":           6,
}

// InteractionCode resolves the stored code of an interaction label.
func InteractionCode(interaction string) (int64, bool) {
	code, ok := interactionCodes[strings.TrimSpace(interaction)]
	return code, ok
}

// ResponsibleParty decodes the party that handles a redemption by user.
func ResponsibleParty(code int64, user *User) Party {
	switch code % 7 {
	case 3:
		if user != nil && user.Division == string(PartyNCK) {
			return PartyNCK
		}
		if user != nil && strings.Contains(user.Position, "первой") {
			return PartyNTP1
		}
		return PartyNTP2
	case 4:
		return PartyAdministrator
	case 5:
		return PartyQuality
	case 6:
		return PartyMonitoring
	default:
		return PartyUnknown
	}
}

// IsDivisional reports whether the party is served by the division mailbox.
func (p Party) IsDivisional() bool {
	return p == PartyNCK || p == PartyNTP1 || p == PartyNTP2
}
