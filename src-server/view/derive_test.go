package view_test

import (
	"testing"

	"eventdesk/src-server/model"
	"eventdesk/src-server/view"
)

func TestDeriveEvents(t *testing.T) {
	rows := view.DeriveEvents("events.example.org", []model.Event{
		{ID: "e1", Name: "Meetup", LocationID: "l1"},
		{ID: "e2", Name: "Webinar"},
	})

	if rows[0].DetailsPageURL != "https://events.example.org/e1" {
		t.Error("unexpected details page", rows[0].DetailsPageURL)
	}
	// location referenced but not loaded
	if rows[0].LocationLabel != "" {
		t.Error("unexpected label", rows[0].LocationLabel)
	}
	if rows[0].OrganizerName != "" {
		t.Error("organizer name should be blank without organizer", rows[0].OrganizerName)
	}
	if rows[1].LocationLabel != view.VirtualEventLabel {
		t.Error("expected virtual label", rows[1].LocationLabel)
	}

	if rows := view.DeriveEvents("h", nil); rows == nil || len(rows) != 0 {
		t.Error("expected empty non-nil rows")
	}
}

func TestDeriveSpeakersMasksEveryEmail(t *testing.T) {
	rows := view.DeriveSpeakers([]model.EventSpeaker{
		{ID: "1", Speaker: &model.Speaker{Name: "a", Email: "a@b.c"}},
		{ID: "2", Speaker: &model.Speaker{Name: "b"}},
		{ID: "3"},
	})
	for _, r := range rows {
		if r.Email != view.MaskedEmail {
			t.Error("email not masked", r.ID, r.Email)
		}
	}
	if rows[2].Name != "" {
		t.Error("missing speaker should give blank name")
	}
}

func TestDeriveAttendees(t *testing.T) {
	rows := view.DeriveAttendees([]model.EventAttendee{
		{ID: "1", Attendee: &model.Attendee{Name: "a", LocationID: "l", Location: &model.Location{Name: "Oslo"}}},
		{ID: "2", Attendee: &model.Attendee{Name: "b", Email: "b@x.y"}},
	})
	if rows[0].Location != "Oslo" {
		t.Error("unexpected location", rows[0].Location)
	}
	if rows[1].Location != view.UndisclosedLocationLabel {
		t.Error("expected undisclosed label", rows[1].Location)
	}
	if rows[1].Email != view.MaskedEmail {
		t.Error("email not masked", rows[1].Email)
	}
}
