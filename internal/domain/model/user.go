package model

import "strings"

// NoEmail is the placeholder the registration system stores for users without an address.
const NoEmail = "Не указан email"

// User represents a staff member registered by the schedule bot.
type User struct {
	ChatID   int64
	Username string
	FullName string
	Role     Role
	Division string
	Position string
	Boss     string
	Email    string
}

// HasEmail reports whether the user left a deliverable address.
func (u *User) HasEmail() bool {
	email := strings.TrimSpace(u.Email)
	return email != "" && email != NoEmail
}

// MatchesNameParts reports whether every whitespace separated token of query
// occurs in fullName, ignoring case.
func MatchesNameParts(fullName, query string) bool {
	parts := strings.Fields(query)
	if len(parts) == 0 {
		return false
	}
	name := strings.ToLower(fullName)
	for _, part := range parts {
		if !strings.Contains(name, strings.ToLower(part)) {
			return false
		}
	}
	return true
}
