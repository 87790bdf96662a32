package view_test

import (
	"testing"

	"eventdesk/src-server/model"
	"eventdesk/src-server/view"
)

func TestPredicates(t *testing.T) {
	full := view.DeriveEvents("h", springAndWinter())

	// case: predicates compose as an intersection
	func() {
		rows := view.Apply(full,
			view.NameContains("e"),
			view.StartsAtOrAfter("2025-01-01T00:00:00.000Z"),
			view.LocationContains("hall"),
		)
		if len(rows) != 1 || rows[0] != full[0] {
			t.Error("expected only Spring Fest", names(rows))
		}
	}()

	// case: Apply never returns nil
	func() {
		if rows := view.Apply(nil); rows == nil {
			t.Error("Apply should return an empty slice")
		}
	}()

	// case: name match ignores case beyond ASCII
	func() {
		rows := view.DeriveEvents("h", []model.Event{{ID: "x", Name: "ÉTÉ Festival"}})
		if got := view.Apply(rows, view.NameContains("été")); len(got) != 1 {
			t.Error("expected unicode case-insensitive match")
		}
	}()

	// case: unnamed events only match a blank keyword
	func() {
		rows := view.DeriveEvents("h", []model.Event{{ID: "x"}})
		if got := view.Apply(rows, view.NameContains("a")); len(got) != 0 {
			t.Error("unnamed event should not match")
		}
		if got := view.Apply(rows, view.NameContains(" ")); len(got) != 1 {
			t.Error("blank keyword should match unnamed event")
		}
	}()

	// case: location keyword length counts characters, not bytes
	func() {
		rows := view.DeriveEvents("h", []model.Event{
			{ID: "x", LocationID: "l", Location: &model.Location{Name: "Zürich"}},
			{ID: "y", LocationID: "m", Location: &model.Location{Name: "Bern"}},
		})
		if got := view.Apply(rows, view.LocationContains("ü")); len(got) != 2 {
			t.Error("single multibyte character should not filter", names(got))
		}
		if got := view.Apply(rows, view.LocationContains("ÜR")); len(got) != 1 {
			t.Error("expected Zürich only", names(got))
		}
	}()
}
