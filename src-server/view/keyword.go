package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower lower-cases s. A cases.Caser carries state, so one is built per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// normalizeKeyword trims and lower-cases a search keyword.
func normalizeKeyword(s string) string {
	return lower(strings.TrimSpace(s))
}
