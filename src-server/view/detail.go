package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventdesk/src-server/model"
)

const (
	ActionGetSpeakers        = "getSpeakers"
	ActionGetLocationDetails = "getLocationDetails"
	ActionGetAttendees       = "getAttendees"
)

// DetailView shows one event's speakers, location and attendees. Each
// section is fetched on demand and keeps its own result and error.
type DetailView struct {
	eventID string
	source  DetailSource
	nav     Navigator
	opts    *options

	mu            sync.Mutex
	speakersTask  task
	locationTask  task
	attendeesTask task
	speakers      Outcome[[]SpeakerRow]
	location      Outcome[*model.Event]
	attendees     Outcome[[]AttendeeRow]
}

func NewDetailView(eventID string, source DetailSource, nav Navigator, opts ...Option) *DetailView {
	return &DetailView{
		eventID: eventID,
		source:  source,
		nav:     nav,
		opts:    newOptions(opts),
	}
}

func (v *DetailView) EventID() string {
	return v.eventID
}

// LoadSpeakers fetches the event's speakers with emails masked.
func (v *DetailView) LoadSpeakers(ctx context.Context) ([]SpeakerRow, error) {
	return load(ctx, v, ActionGetSpeakers, &v.speakersTask, &v.speakers,
		func(ctx context.Context) ([]SpeakerRow, error) {
			speakers, err := v.source.GetSpeakers(ctx, v.eventID)
			if err != nil {
				return nil, err
			}
			return DeriveSpeakers(speakers), nil
		})
}

// LoadLocation fetches the event's location details. The result is nil when
// the event has no location.
func (v *DetailView) LoadLocation(ctx context.Context) (*model.Event, error) {
	return load(ctx, v, ActionGetLocationDetails, &v.locationTask, &v.location,
		func(ctx context.Context) (*model.Event, error) {
			event, err := v.source.GetLocationDetails(ctx, v.eventID)
			if err != nil {
				return nil, err
			}
			if event == nil || !event.HasLocation() {
				return nil, nil
			}
			return event, nil
		})
}

// LoadAttendees fetches the event's attendees with emails masked.
func (v *DetailView) LoadAttendees(ctx context.Context) ([]AttendeeRow, error) {
	return load(ctx, v, ActionGetAttendees, &v.attendeesTask, &v.attendees,
		func(ctx context.Context) ([]AttendeeRow, error) {
			attendees, err := v.source.GetAttendees(ctx, v.eventID)
			if err != nil {
				return nil, err
			}
			return DeriveAttendees(attendees), nil
		})
}

// load runs one section fetch. A failure clears that section only.
func load[T any](
	ctx context.Context,
	v *DetailView,
	action string,
	t *task,
	out *Outcome[T],
	fetch func(context.Context) (T, error),
) (T, error) {
	v.opts.logProfile(ctx)

	v.mu.Lock()
	fetchCtx, gen := t.begin(ctx)
	v.mu.Unlock()

	start := time.Now()
	value, err := fetch(fetchCtx)
	elapsed := time.Since(start)
	v.opts.report(action, elapsed, err)

	v.mu.Lock()
	defer v.mu.Unlock()
	var zero T
	if !t.current(gen) {
		slog.Debug("dropping superseded fetch", "action", action, "event_id", v.eventID)
		return zero, ErrSuperseded
	}
	defer t.finish(gen)

	if err != nil {
		err = fmt.Errorf("(*DetailView).%s: %w", action, err)
		*out = Outcome[T]{Err: err, FetchedAt: time.Now()}
		slog.Warn("can't fetch event section", "action", action, "event_id", v.eventID, "error", err)
		return zero, err
	}
	*out = Outcome[T]{Value: value, FetchedAt: time.Now()}
	return value, nil
}

func (v *DetailView) Speakers() Outcome[[]SpeakerRow] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.speakers
}

func (v *DetailView) Location() Outcome[*model.Event] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.location
}

func (v *DetailView) Attendees() Outcome[[]AttendeeRow] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.attendees
}

// CreateSpeaker navigates to a new speaker record linked to this event.
func (v *DetailView) CreateSpeaker() PageReference {
	return v.create(ObjectEventSpeaker)
}

// CreateAttendee navigates to a new attendee record linked to this event.
func (v *DetailView) CreateAttendee() PageReference {
	return v.create(ObjectEventAttendee)
}

func (v *DetailView) create(object string) PageReference {
	ref := NewRecordPage(object, map[string]string{FieldEvent: v.eventID})
	if v.nav != nil {
		v.nav.Navigate(ref)
	}
	return ref
}
