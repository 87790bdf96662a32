package route_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventdesk/src-server/model"
	"eventdesk/src-server/route"
	"eventdesk/src-server/utils"
	"eventdesk/src-server/view"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestApp(t *testing.T) (*utils.AppState, http.Handler) {
	t.Helper()
	t.Setenv("HOSTNAME", "events.example.org")
	t.Setenv("TIMEZONE", "UTC")

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	as := utils.NewAppStateWithDB(utils.NewConfig(), bun.NewDB(db, sqlitedialect.New()))
	if err := as.InitDatabase(context.Background()); err != nil {
		t.Fatal(err)
	}

	seed := model.Seed{
		Locations:  []model.Location{{ID: "l1", Name: "Paris Hall", City: "Paris"}},
		Organizers: []model.Organizer{{ID: "o1", Name: "Ana"}, {ID: "o2", Name: "Ben"}},
		Events: []model.Event{
			{ID: "a1", Name: "Spring Fest", OrganizerID: "o1", LocationID: "l1", StartDateTime: "2099-04-01T10:00:00Z"},
			{ID: "b2", Name: "Winter Gala", OrganizerID: "o2", StartDateTime: "2099-12-01T18:00:00Z"},
			{ID: "c3", Name: "Old Party", OrganizerID: "o2", StartDateTime: "2001-01-01T00:00:00Z"},
		},
		Speakers:      []model.Speaker{{ID: "s1", Name: "Dana", Email: "dana@corp.io"}, {ID: "s2", Name: "Eve"}},
		EventSpeakers: []model.EventSpeaker{{ID: "es1", EventID: "a1", SpeakerID: "s1"}},
		Attendees:     []model.Attendee{{ID: "p1", Name: "Fay", Email: "fay@corp.io"}},
		EventAttendees: []model.EventAttendee{
			{ID: "ea1", EventID: "a1", AttendeeID: "p1"},
		},
	}
	if err := seed.Apply(context.Background(), as.BunDB); err != nil {
		t.Fatal(err)
	}
	return as, route.New(as)
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func rowIDs(rows []view.EventRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

type listResp struct {
	ID    string          `json:"id"`
	Rows  []view.EventRow `json:"rows"`
	Total int             `json:"total"`
	Error string          `json:"error"`
}

func TestListViewRoutes(t *testing.T) {
	_, h := newTestApp(t)

	rec := do(t, h, http.MethodPost, "/views/events", nil)
	if rec.Code != http.StatusCreated {
		t.Fatal("unexpected status", rec.Code, rec.Body.String())
	}
	var opened listResp
	decode(t, rec, &opened)

	// case: only upcoming events, earliest first, with derived fields
	func() {
		if len(opened.Rows) != 2 || opened.Total != 2 {
			t.Fatal("expected 2 upcoming events, got", rowIDs(opened.Rows))
		}
		first := opened.Rows[0]
		if first.ID != "a1" || first.DetailsPageURL != "https://events.example.org/a1" {
			t.Error("unexpected first row", first.ID, first.DetailsPageURL)
		}
		if first.OrganizerName != "Ana" || first.LocationLabel != "Paris Hall" {
			t.Error("unexpected derived fields", first.OrganizerName, first.LocationLabel)
		}
		if opened.Rows[1].LocationLabel != view.VirtualEventLabel {
			t.Error("expected virtual label", opened.Rows[1].LocationLabel)
		}
	}()

	search := func(field, value string) listResp {
		rec := do(t, h, http.MethodPost, "/views/events/"+opened.ID+"/search", map[string]string{
			"field": field, "value": value,
		})
		if rec.Code != http.StatusOK {
			t.Fatal("unexpected status", rec.Code, rec.Body.String())
		}
		var resp listResp
		decode(t, rec, &resp)
		return resp
	}

	// case: each search
	func() {
		if got := search("name", "gala"); len(got.Rows) != 1 || got.Rows[0].ID != "b2" {
			t.Error("name search", rowIDs(got.Rows))
		}
		if got := search("start", "2099-06-01"); len(got.Rows) != 1 || got.Rows[0].ID != "b2" {
			t.Error("start filter", rowIDs(got.Rows))
		}
		if got := search("location", "pa"); len(got.Rows) != 1 || got.Rows[0].ID != "a1" {
			t.Error("location search", rowIDs(got.Rows))
		}
		if got := search("location", "p"); len(got.Rows) != 2 {
			t.Error("short location keyword should show all", rowIDs(got.Rows))
		}
	}()

	// case: reset and current state
	func() {
		search("name", "zzz")
		rec := do(t, h, http.MethodPost, "/views/events/"+opened.ID+"/reset", nil)
		var resp listResp
		decode(t, rec, &resp)
		if len(resp.Rows) != 2 {
			t.Error("reset should show all rows", rowIDs(resp.Rows))
		}
		rec = do(t, h, http.MethodGet, "/views/events/"+opened.ID, nil)
		decode(t, rec, &resp)
		if len(resp.Rows) != 2 {
			t.Error("current rows", rowIDs(resp.Rows))
		}
	}()

	// case: bad input
	func() {
		rec := do(t, h, http.MethodPost, "/views/events/"+opened.ID+"/search", map[string]string{"field": "color"})
		if rec.Code != http.StatusBadRequest {
			t.Error("unknown field should be rejected", rec.Code)
		}
		rec = do(t, h, http.MethodPost, "/views/events/"+opened.ID+"/search", map[string]string{"field": "start", "value": "qwzx"})
		if rec.Code != http.StatusBadRequest {
			t.Error("bad date should be rejected", rec.Code)
		}
		rec = do(t, h, http.MethodGet, "/views/events/00000000-0000-0000-0000-000000000000", nil)
		if rec.Code != http.StatusNotFound {
			t.Error("unknown view should be 404", rec.Code)
		}
	}()

	// case: delete
	func() {
		rec := do(t, h, http.MethodDelete, "/views/events/"+opened.ID, nil)
		if rec.Code != http.StatusNoContent {
			t.Error("unexpected status", rec.Code)
		}
		rec = do(t, h, http.MethodGet, "/views/events/"+opened.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Error("deleted view should be gone", rec.Code)
		}
	}()
}

func TestEventsQuery(t *testing.T) {
	_, h := newTestApp(t)

	rec := do(t, h, http.MethodGet, "/events?name=e&location=hall", nil)
	if rec.Code != http.StatusOK {
		t.Fatal("unexpected status", rec.Code, rec.Body.String())
	}
	var rows []view.EventRow
	decode(t, rec, &rows)
	if len(rows) != 1 || rows[0].ID != "a1" {
		t.Error("criteria should intersect", rowIDs(rows))
	}

	rec = do(t, h, http.MethodGet, "/events", nil)
	decode(t, rec, &rows)
	if len(rows) != 2 {
		t.Error("no criteria should list every upcoming event", rowIDs(rows))
	}
}

func TestPing(t *testing.T) {
	_, h := newTestApp(t)
	if rec := do(t, h, http.MethodGet, "/ping", nil); rec.Code != http.StatusOK {
		t.Error("unexpected status", rec.Code)
	}
}
