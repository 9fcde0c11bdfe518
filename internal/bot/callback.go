package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxCallbackLen is the Telegram limit for callback data.
const MaxCallbackLen = 64

// Noop marks buttons that only display information, like the page indicator.
const Noop = "noop"

const callbackVersion = "v1"

// ErrInvalidCallback is returned for data that was not produced by Encode.
var ErrInvalidCallback = errors.New("invalid callback data")

// Scope groups callbacks by the screen that produced them.
type Scope string

const (
	ScopeMain   Scope = "main"
	ScopeAwards Scope = "awards"
	ScopeAvail  Scope = "avail"
	ScopeSelect Scope = "select"
	ScopeAch    Scope = "ach"
	ScopeAdmin  Scope = "admin"
	ScopeRole   Scope = "role"
)

var knownScopes = map[Scope]struct{}{
	ScopeMain:   {},
	ScopeAwards: {},
	ScopeAvail:  {},
	ScopeSelect: {},
	ScopeAch:    {},
	ScopeAdmin:  {},
	ScopeRole:   {},
}

// Menu names used inside scopes.
const (
	MenuMain         = "main"
	MenuLevel        = "level"
	MenuFAQ          = "faq"
	MenuAchievements = "achievements"
	MenuAwards       = "awards"
	MenuAvailable    = "available"
	MenuExecuted     = "executed"
	MenuAll          = "all"
	MenuConfirm      = "confirm"
	MenuPage         = "page"
	MenuDetails      = "details"
	MenuSearch       = "search"
	MenuReset        = "reset"
)

// Callback is the decoded payload of an inline button.
type Callback struct {
	Scope Scope
	Menu  string
	Page  int
	Award int64
}

// Encode packs c as v1|scope|menu|page|award.
func (c Callback) Encode() string {
	return strings.Join([]string{
		callbackVersion,
		string(c.Scope),
		c.Menu,
		strconv.Itoa(c.Page),
		strconv.FormatInt(c.Award, 10),
	}, "|")
}

// Decode parses data produced by Encode. A page below 1 decodes as 1.
func Decode(data string) (Callback, error) {
	if len(data) > MaxCallbackLen {
		return Callback{}, fmt.Errorf("%w: %d bytes", ErrInvalidCallback, len(data))
	}
	parts := strings.Split(data, "|")
	if len(parts) != 5 || parts[0] != callbackVersion {
		return Callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}

	scope := Scope(parts[1])
	if _, ok := knownScopes[scope]; !ok {
		return Callback{}, fmt.Errorf("%w: unknown scope %q", ErrInvalidCallback, parts[1])
	}

	page, err := strconv.Atoi(parts[3])
	if err != nil {
		return Callback{}, fmt.Errorf("%w: page %q", ErrInvalidCallback, parts[3])
	}
	if page < 1 {
		page = 1
	}

	award, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil || award < 0 {
		return Callback{}, fmt.Errorf("%w: award %q", ErrInvalidCallback, parts[4])
	}

	return Callback{Scope: scope, Menu: parts[2], Page: page, Award: award}, nil
}

func to(scope Scope, menu string) Callback {
	return Callback{Scope: scope, Menu: menu, Page: 1}
}
