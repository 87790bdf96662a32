package utils_test

import (
	"strings"
	"testing"
	"time"

	"eventdesk/src-server/utils"
)

func TestParseDateFloor(t *testing.T) {
	w := utils.NewWhen()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	// case: blank input
	func() {
		got, err := utils.ParseDateFloor(w, "  ", now, time.UTC)
		if err != nil || got != "" {
			t.Error("blank input should give blank threshold", got, err)
		}
	}()

	// case: iso date in the configured zone
	func() {
		got, err := utils.ParseDateFloor(w, "2025-04-01", now, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if got != "2025-04-01T00:00:00.000Z" {
			t.Error("unexpected threshold", got)
		}

		paris, err := time.LoadLocation("Europe/Paris")
		if err != nil {
			t.Log("no tzdata:", err)
			return
		}
		got, err = utils.ParseDateFloor(w, "2025-04-01T12:00", now, paris)
		if err != nil {
			t.Fatal(err)
		}
		if got != "2025-04-01T10:00:00.000Z" {
			t.Error("expected conversion to UTC", got)
		}
	}()

	// case: stored layout passes through
	func() {
		got, err := utils.ParseDateFloor(w, "2025-12-01T18:00:00.000Z", now, time.UTC)
		if err != nil || got != "2025-12-01T18:00:00.000Z" {
			t.Error("unexpected threshold", got, err)
		}
	}()

	// case: natural language
	func() {
		got, err := utils.ParseDateFloor(w, "tomorrow", now, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(got, "2025-01-02") {
			t.Error("expected tomorrow's date", got)
		}
	}()

	// case: nonsense
	func() {
		if _, err := utils.ParseDateFloor(w, "qwzx", now, time.UTC); err == nil {
			t.Error("expected an error")
		}
	}()
}
