// Package backend holds the event queries the views call, backed by bun.
package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventdesk/src-server/model"

	"github.com/uptrace/bun"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")
)

type Store struct {
	db  bun.IDB
	now func() time.Time
}

func NewStore(db bun.IDB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock replaces the clock used to decide which events are upcoming.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) GetSpeakers(ctx context.Context, eventID string) ([]model.EventSpeaker, error) {
	speakers := make([]model.EventSpeaker, 0)
	if err := s.db.NewSelect().
		Model(&speakers).
		Relation("Speaker").
		Where("?TableAlias.event_id = ?", eventID).
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Store).GetSpeakers: %w", err)
	}
	return speakers, nil
}

func (s *Store) GetAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error) {
	attendees := make([]model.EventAttendee, 0)
	if err := s.db.NewSelect().
		Model(&attendees).
		Relation("Attendee").
		Relation("Attendee.Location").
		Where("?TableAlias.event_id = ?", eventID).
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Store).GetAttendees: %w", err)
	}
	return attendees, nil
}

// GetLocationDetails returns the event with its location loaded. Events
// without a location come back with a blank LocationID.
func (s *Store) GetLocationDetails(ctx context.Context, eventID string) (*model.Event, error) {
	event := new(model.Event)
	if err := s.db.NewSelect().
		Model(event).
		Relation("Location").
		Where("?TableAlias.id = ?", eventID).
		Limit(1).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("(*Store).GetLocationDetails: %w", ErrEventNotFound)
		}
		return nil, fmt.Errorf("(*Store).GetLocationDetails: %w", err)
	}
	if !event.HasLocation() {
		event.Location = nil
	}
	return event, nil
}

// UpcomingEvents returns every event starting now or later, earliest first.
func (s *Store) UpcomingEvents(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := s.db.NewSelect().
		Model(&events).
		Relation("Organizer").
		Relation("Location").
		Where("?TableAlias.start_date_time >= ?", model.FormatDateTime(s.now())).
		OrderExpr("?TableAlias.start_date_time ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Store).UpcomingEvents: %w", err)
	}
	return events, nil
}

func (s *Store) GetUserProfile(ctx context.Context, userID string) (*model.User, error) {
	user := new(model.User)
	if err := s.db.NewSelect().
		Model(user).
		Where("id = ?", userID).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("(*Store).GetUserProfile: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("(*Store).GetUserProfile: %w", err)
	}
	return user, nil
}

func (s *Store) eventExists(ctx context.Context, eventID string) error {
	exists, err := s.db.NewSelect().
		Model((*model.Event)(nil)).
		Where("id = ?", eventID).
		Exists(ctx)
	switch {
	case err != nil:
		return err
	case !exists:
		return ErrEventNotFound
	}
	return nil
}

func (s *Store) CreateEventSpeaker(ctx context.Context, es *model.EventSpeaker) error {
	if err := s.eventExists(ctx, es.EventID); err != nil {
		return fmt.Errorf("(*Store).CreateEventSpeaker: %w", err)
	}
	if err := es.Insert(ctx, s.db); err != nil {
		return fmt.Errorf("(*Store).CreateEventSpeaker: %w", err)
	}
	return nil
}

func (s *Store) CreateEventAttendee(ctx context.Context, ea *model.EventAttendee) error {
	if err := s.eventExists(ctx, ea.EventID); err != nil {
		return fmt.Errorf("(*Store).CreateEventAttendee: %w", err)
	}
	if err := ea.Insert(ctx, s.db); err != nil {
		return fmt.Errorf("(*Store).CreateEventAttendee: %w", err)
	}
	return nil
}
