package utils

import (
	"fmt"
	"strings"
	"time"

	"eventdesk/src-server/model"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// NewWhen returns a natural-language date parser for English input.
func NewWhen() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

var dateLayouts = []string{
	model.DateTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateFloor turns user input into a start-date threshold in
// model.DateTimeLayout. ISO dates are tried first, then natural language
// such as "next friday". Dates without a zone are read in loc. Blank input
// gives a blank threshold.
func ParseDateFloor(w *when.Parser, input string, now time.Time, loc *time.Location) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return model.FormatDateTime(t), nil
		}
	}

	result, err := w.Parse(input, now.In(loc))
	if err != nil {
		return "", fmt.Errorf("ParseDateFloor: %w", err)
	}
	if result == nil {
		return "", fmt.Errorf("ParseDateFloor: can't understand %q", input)
	}
	return model.FormatDateTime(result.Time), nil
}
