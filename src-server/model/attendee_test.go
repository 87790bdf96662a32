package model_test

import (
	"context"
	"database/sql"
	"testing"

	"eventdesk/src-server/model"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	bundb := bun.NewDB(db, sqlitedialect.New())
	t.Cleanup(func() { bundb.Close() })
	if err := model.CreateSchema(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	return bundb
}

func TestAttendee(t *testing.T) {
	ctx := context.Background()
	bundb := newDB(t)

	location := model.Location{ID: "l1", Name: "Berlin"}
	event := model.Event{ID: "e1", Name: "test", OrganizerID: "o1", StartDateTime: "2025-04-01T10:00:00.000Z"}
	withLocation := model.Attendee{ID: "p1", Name: "Eli", LocationID: location.ID}
	withoutLocation := model.Attendee{ID: "p2", Name: "Fay"}

	if _, err := bundb.NewInsert().Model(&location).Exec(ctx); err != nil {
		t.Fatal(err)
	}
	if err := event.Upsert(ctx, bundb); err != nil {
		t.Fatal(err)
	}
	for _, a := range []*model.Attendee{&withLocation, &withoutLocation} {
		if _, err := bundb.NewInsert().Model(a).Exec(ctx); err != nil {
			t.Fatal(err)
		}
	}

	// case: link rows get an id and are idempotent
	func() {
		link := model.EventAttendee{EventID: event.ID, AttendeeID: withLocation.ID}
		if err := link.Insert(ctx, bundb); err != nil {
			t.Fatal(err)
		}
		if link.ID == "" {
			t.Error("link id should be generated")
		}
		if err := link.Insert(ctx, bundb); err != nil {
			t.Error("inserting the same link twice should not fail", err)
		}
		other := model.EventAttendee{EventID: event.ID, AttendeeID: withoutLocation.ID}
		if err := other.Insert(ctx, bundb); err != nil {
			t.Fatal(err)
		}
	}()

	// case: attendee location through the link
	func() {
		links := make([]model.EventAttendee, 0)
		if err := bundb.NewSelect().
			Model(&links).
			Relation("Attendee").
			Relation("Attendee.Location").
			Where("?TableAlias.event_id = ?", event.ID).
			OrderExpr("attendee__name ASC").
			Scan(ctx); err != nil {
			t.Fatal(err)
		}
		if len(links) != 2 {
			t.Fatal("expected 2 links, got", len(links))
		}
		if !links[0].Attendee.HasLocation() || links[0].Attendee.Location.Name != "Berlin" {
			t.Error("attendee location not loaded", links[0].Attendee)
		}
		if links[1].Attendee.HasLocation() {
			t.Error("attendee without location", links[1].Attendee)
		}
	}()

	// case: blank ids are rejected
	func() {
		if err := (&model.EventAttendee{EventID: event.ID}).Insert(ctx, bundb); err == nil {
			t.Error("expected error for blank attendee id")
		}
	}()
}

func TestEventUpsert(t *testing.T) {
	ctx := context.Background()
	bundb := newDB(t)

	// case: invalid events
	func() {
		for _, e := range []model.Event{
			{OrganizerID: "o1", StartDateTime: "2025-04-01T10:00:00.000Z"},
			{ID: "e1", StartDateTime: "2025-04-01T10:00:00.000Z"},
			{ID: "e1", OrganizerID: "o1", StartDateTime: "April 1st"},
			{ID: "e1", OrganizerID: "o1", StartDateTime: "2025-04-01T10:00:00.000Z", EndDateTime: "2025-03-01T10:00:00.000Z"},
		} {
			if err := e.Upsert(ctx, bundb); err == nil {
				t.Error("expected error for", e)
			}
		}
	}()

	// case: upsert updates in place
	func() {
		e := model.Event{ID: "e1", Name: "first", OrganizerID: "o1", StartDateTime: "2025-04-01T10:00:00.000Z"}
		if err := e.Upsert(ctx, bundb); err != nil {
			t.Fatal(err)
		}
		e.Name = "second"
		if err := e.Upsert(ctx, bundb); err != nil {
			t.Fatal(err)
		}
		got := new(model.Event)
		if err := bundb.NewSelect().Model(got).Where("id = ?", "e1").Scan(ctx); err != nil {
			t.Fatal(err)
		}
		if got.Name != "second" || got.HasLocation() {
			t.Error("unexpected event", got)
		}
	}()
}
