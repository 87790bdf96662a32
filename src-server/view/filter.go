package view

import (
	"strings"
	"unicode/utf8"
)

// MinLocationKeyword is the shortest location keyword that narrows the list.
const MinLocationKeyword = 2

// Predicate decides whether a row stays in the displayed subset.
type Predicate func(*EventRow) bool

func all(*EventRow) bool { return true }

// NameContains matches rows whose name contains the trimmed keyword, ignoring
// case. A blank keyword matches every row.
func NameContains(keyword string) Predicate {
	keyword = normalizeKeyword(keyword)
	if keyword == "" {
		return all
	}
	return func(r *EventRow) bool {
		return strings.Contains(lower(r.Name), keyword)
	}
}

// StartsAtOrAfter matches rows starting at or after threshold, compared as
// stored date-time strings. A blank threshold matches every row.
func StartsAtOrAfter(threshold string) Predicate {
	if threshold == "" {
		return all
	}
	return func(r *EventRow) bool {
		return r.StartDateTime >= threshold
	}
}

// LocationContains matches rows whose location label contains keyword,
// ignoring case. Keywords shorter than MinLocationKeyword match every row.
func LocationContains(keyword string) Predicate {
	if utf8.RuneCountInString(keyword) < MinLocationKeyword {
		return all
	}
	keyword = lower(keyword)
	return func(r *EventRow) bool {
		return strings.Contains(lower(r.LocationLabel), keyword)
	}
}

// Apply returns the rows of full matching every predicate, in order. The
// returned slice is new; the rows are shared with full.
func Apply(full []*EventRow, preds ...Predicate) []*EventRow {
	out := make([]*EventRow, 0, len(full))
rows:
	for _, r := range full {
		for _, p := range preds {
			if !p(r) {
				continue rows
			}
		}
		out = append(out, r)
	}
	return out
}
