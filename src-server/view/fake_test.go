package view_test

import (
	"context"
	"errors"
	"sync"

	"eventdesk/src-server/model"
)

var errBackendDown = errors.New("backend down")

// fakeSource serves canned records. A non-nil block channel holds every
// call until it is closed or the call's context is cancelled.
type fakeSource struct {
	mu sync.Mutex

	events    []model.Event
	speakers  []model.EventSpeaker
	attendees []model.EventAttendee
	location  *model.Event
	user      *model.User
	err       error
	block     chan struct{}

	calls map[string]int
}

func (f *fakeSource) record(ctx context.Context, action string) error {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[action]++
	block := f.block
	err := f.err
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeSource) count(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[action]
}

func (f *fakeSource) UpcomingEvents(ctx context.Context) ([]model.Event, error) {
	if err := f.record(ctx, "upcomingEvents"); err != nil {
		return nil, err
	}
	return f.events, nil
}

func (f *fakeSource) GetSpeakers(ctx context.Context, eventID string) ([]model.EventSpeaker, error) {
	if err := f.record(ctx, "getSpeakers"); err != nil {
		return nil, err
	}
	return f.speakers, nil
}

func (f *fakeSource) GetAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error) {
	if err := f.record(ctx, "getAttendees"); err != nil {
		return nil, err
	}
	return f.attendees, nil
}

func (f *fakeSource) GetLocationDetails(ctx context.Context, eventID string) (*model.Event, error) {
	if err := f.record(ctx, "getLocationDetails"); err != nil {
		return nil, err
	}
	return f.location, nil
}

func (f *fakeSource) GetUserProfile(ctx context.Context, userID string) (*model.User, error) {
	if err := f.record(ctx, "getUserProfile"); err != nil {
		return nil, err
	}
	return f.user, nil
}

func springAndWinter() []model.Event {
	return []model.Event{
		{
			ID:            "a1",
			Name:          "Spring Fest",
			OrganizerID:   "o1",
			LocationID:    "l1",
			StartDateTime: "2025-04-01T10:00:00.000Z",
			Organizer:     &model.Organizer{ID: "o1", Name: "Ana"},
			Location:      &model.Location{ID: "l1", Name: "Paris Hall"},
		},
		{
			ID:            "b2",
			Name:          "Winter Gala",
			OrganizerID:   "o2",
			StartDateTime: "2025-12-01T18:00:00.000Z",
			Organizer:     &model.Organizer{ID: "o2", Name: "Ben"},
		},
	}
}
