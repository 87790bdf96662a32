package rpc_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventdesk/src-server/backend"
	"eventdesk/src-server/model"
	"eventdesk/src-server/rpc"
)

type fakeBackend struct{}

func (fakeBackend) GetSpeakers(_ context.Context, eventID string) ([]model.EventSpeaker, error) {
	return []model.EventSpeaker{
		{ID: "es1", EventID: eventID, SpeakerID: "s1", Speaker: &model.Speaker{ID: "s1", Name: "Dana"}},
	}, nil
}

func (fakeBackend) GetAttendees(context.Context, string) ([]model.EventAttendee, error) {
	return nil, errors.New("database is locked")
}

func (fakeBackend) GetLocationDetails(_ context.Context, eventID string) (*model.Event, error) {
	return nil, fmt.Errorf("(*Store).GetLocationDetails: %w", backend.ErrEventNotFound)
}

func (fakeBackend) UpcomingEvents(context.Context) ([]model.Event, error) {
	return []model.Event{
		{ID: "a1", Name: "Spring Fest", StartDateTime: "2025-04-01T10:00:00.000Z",
			Organizer: &model.Organizer{ID: "o1", Name: "Ana"}},
	}, nil
}

func (fakeBackend) GetUserProfile(_ context.Context, userID string) (*model.User, error) {
	return &model.User{ID: userID, Username: "ana"}, nil
}

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rpc/{method}", rpc.Handler(fakeBackend{}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	client := rpc.NewClient(newServer(t).URL + "/")

	// case: upcoming events keep their relations
	func() {
		events, err := client.UpcomingEvents(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 1 || events[0].Organizer == nil || events[0].Organizer.Name != "Ana" {
			t.Error("unexpected events", events)
		}
	}()

	// case: event id reaches the backend
	func() {
		speakers, err := client.GetSpeakers(ctx, "a1")
		if err != nil {
			t.Fatal(err)
		}
		if len(speakers) != 1 || speakers[0].EventID != "a1" || speakers[0].Speaker.Name != "Dana" {
			t.Error("unexpected speakers", speakers)
		}
	}()

	// case: not found maps to 404
	func() {
		_, err := client.GetLocationDetails(ctx, "nope")
		var rpcErr *rpc.Error
		if !errors.As(err, &rpcErr) {
			t.Fatal("expected *rpc.Error, got", err)
		}
		if rpcErr.Status != http.StatusNotFound || rpcErr.Method != rpc.MethodGetLocationDetails {
			t.Error("unexpected error", rpcErr)
		}
	}()

	// case: backend failure maps to 500
	func() {
		_, err := client.GetAttendees(ctx, "a1")
		var rpcErr *rpc.Error
		if !errors.As(err, &rpcErr) || rpcErr.Status != http.StatusInternalServerError {
			t.Error("expected 500, got", err)
		}
	}()

	// case: missing event id is rejected
	func() {
		_, err := client.GetSpeakers(ctx, "")
		var rpcErr *rpc.Error
		if !errors.As(err, &rpcErr) || rpcErr.Status != http.StatusBadRequest {
			t.Error("expected 400, got", err)
		}
	}()

	// case: profile lookup
	func() {
		user, err := client.GetUserProfile(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if user.ID != "u1" || user.Username != "ana" {
			t.Error("unexpected user", user)
		}
	}()
}

func TestUnknownMethod(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Post(srv.URL+"/rpc/deleteEverything", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Error("expected 404, got", resp.StatusCode)
	}
}
