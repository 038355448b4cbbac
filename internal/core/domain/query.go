package domain

import (
	"strings"
	"unicode"
)

// fullWidthComma is the CJK comma accepted as a keyword separator.
const fullWidthComma = '，'

// SearchQuery is a user supplied title and the keyword tokens derived from it.
// It is created once per search attempt and never modified afterwards.
type SearchQuery struct {
	// Raw is the title exactly as entered.
	Raw string

	// Tokens holds the trimmed keywords in input order, case preserved.
	Tokens []string

	// Lower holds lowercase copies of Tokens, index aligned.
	Lower []string
}

// Tokenize splits a title on ASCII commas, full-width commas and whitespace
// runs, trims every piece and drops empties. Duplicates are kept.
func Tokenize(title string) []string {
	fields := strings.FieldsFunc(title, func(r rune) bool {
		return r == ',' || r == fullWidthComma || unicode.IsSpace(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// NewSearchQuery builds a query from a title.
// Returns ErrEmptyQuery when the title has no usable tokens.
func NewSearchQuery(title string) (SearchQuery, error) {
	tokens := Tokenize(title)
	if len(tokens) == 0 {
		return SearchQuery{}, ErrEmptyQuery
	}

	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
	}

	return SearchQuery{
		Raw:    strings.TrimSpace(title),
		Tokens: tokens,
		Lower:  lower,
	}, nil
}

// IsEmpty returns true if the query carries no tokens.
func (q SearchQuery) IsEmpty() bool {
	return len(q.Tokens) == 0
}

// Matches reports whether any token occurs in the path or file name.
// Each token is tried exactly first (CJK titles have no case) and then
// case-insensitively. The first satisfying token wins.
func (q SearchQuery) Matches(path, name string) bool {
	pathLower := strings.ToLower(path)
	nameLower := strings.ToLower(name)

	for i, token := range q.Tokens {
		if strings.Contains(path, token) || strings.Contains(name, token) {
			return true
		}
		low := strings.ToLower(token)
		if i < len(q.Lower) {
			low = q.Lower[i]
		}
		if strings.Contains(pathLower, low) || strings.Contains(nameLower, low) {
			return true
		}
	}
	return false
}
