package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	domainErrors "github.com/ERTG-BOTS/AchieverBot/internal/domain/errors"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/model"
	"github.com/ERTG-BOTS/AchieverBot/internal/domain/repository"
)

// NameKind is the shape of an admin search query.
type NameKind int

const (
	Invalid NameKind = iota
	NameSurname
	NameSurnamePatronymic
	NameSurnamePatronymicExtra
	ExactPhrase
)

func (k NameKind) String() string {
	switch k {
	case NameSurname:
		return "name_surname"
	case NameSurnamePatronymic:
		return "name_surname_patronymic"
	case NameSurnamePatronymicExtra:
		return "name_surname_patronymic_extra"
	case ExactPhrase:
		return "exact_phrase"
	default:
		return "invalid"
	}
}

// FullName reports whether the query named at least surname, name and patronymic.
func (k NameKind) FullName() bool {
	return k == NameSurnamePatronymic || k == NameSurnamePatronymicExtra
}

const (
	cyrillicWord = `[а-яА-ЯёЁ]+`
	// wordSep also admits Unicode spaces such as NBSP that mobile keyboards insert.
	wordSep      = `[\s\p{Zs}]`
)

var namePatterns = []struct {
	kind NameKind
	re   *regexp.Regexp
}{
	{NameSurnamePatronymicExtra, regexp.MustCompile(`^` + cyrillicWord + `(` + wordSep + cyrillicWord + `){3}$`)},
	{NameSurnamePatronymic, regexp.MustCompile(`^` + cyrillicWord + `(` + wordSep + cyrillicWord + `){2}$`)},
	{NameSurname, regexp.MustCompile(`^` + cyrillicWord + wordSep + cyrillicWord + `$`)},
}

// ClassifyName tells how many Cyrillic words separated by single whitespace text holds.
// It never returns ExactPhrase; that variant needs a store lookup.
func ClassifyName(text string) NameKind {
	for _, p := range namePatterns {
		if p.re.MatchString(text) {
			return p.kind
		}
	}
	return Invalid
}

// SearchResult is the outcome of an admin search.
type SearchResult struct {
	Kind  NameKind
	Query string
	Users []model.User
}

// SearchUseCase finds staff members by full or partial name.
type SearchUseCase struct {
	users repository.UserRepository
	limit int
}

// NewSearchUseCase constructs SearchUseCase; limit <= 0 selects the repository default.
func NewSearchUseCase(users repository.UserRepository, limit int) *SearchUseCase {
	if limit <= 0 {
		limit = repository.DefaultSearchLimit
	}
	return &SearchUseCase{users: users, limit: limit}
}

// Search tries an exact full name match first and falls back to the fuzzy search
// for well formed queries. Malformed queries yield ErrInvalidSearch.
func (u *SearchUseCase) Search(ctx context.Context, text string) (SearchResult, error) {
	query := strings.TrimSpace(text)
	result := SearchResult{Kind: Invalid, Query: query}
	if query == "" {
		return result, domainErrors.ErrInvalidSearch
	}

	user, err := u.users.GetByFullName(ctx, query)
	switch {
	case err == nil:
		result.Kind = ExactPhrase
		result.Users = []model.User{*user}
		return result, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return result, fmt.Errorf("exact search: %w", err)
	}

	result.Kind = ClassifyName(query)
	if result.Kind == Invalid {
		return result, domainErrors.ErrInvalidSearch
	}

	users, err := u.users.SearchByNameParts(ctx, query, u.limit)
	if err != nil {
		return result, fmt.Errorf("fuzzy search: %w", err)
	}
	result.Users = users
	return result, nil
}
