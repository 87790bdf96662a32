// Package view holds the event list and event detail views: the records they
// fetch, the display fields derived from them and the list search logic.
package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventdesk/src-server/model"
)

// UpcomingSource feeds the event list view.
type UpcomingSource interface {
	UpcomingEvents(ctx context.Context) ([]model.Event, error)
}

// DetailSource feeds the event detail view.
type DetailSource interface {
	GetSpeakers(ctx context.Context, eventID string) ([]model.EventSpeaker, error)
	GetAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error)
	GetLocationDetails(ctx context.Context, eventID string) (*model.Event, error)
}

// ProfileLookup resolves the current user's profile. Views only log it.
type ProfileLookup interface {
	GetUserProfile(ctx context.Context, userID string) (*model.User, error)
}

// Observer is told about every completed backend call.
type Observer func(action string, elapsed time.Duration, err error)

type Option func(*options)

type options struct {
	observe  Observer
	profiles ProfileLookup
	userID   string

	profileOnce sync.Once
}

func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observe = o
	}
}

// WithProfileLookup makes the view log the profile of userID on its first fetch.
func WithProfileLookup(p ProfileLookup, userID string) Option {
	return func(opts *options) {
		opts.profiles = p
		opts.userID = userID
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) report(action string, elapsed time.Duration, err error) {
	if o.observe != nil {
		o.observe(action, elapsed, err)
	}
}

func (o *options) logProfile(ctx context.Context) {
	if o.profiles == nil || o.userID == "" {
		return
	}
	o.profileOnce.Do(func() {
		user, err := o.profiles.GetUserProfile(ctx, o.userID)
		if err != nil {
			slog.Warn("can't look up user profile", "user_id", o.userID, "error", err)
			return
		}
		if user == nil {
			return
		}
		slog.Debug("user profile", "user_id", user.ID, "username", user.Username, "profile", user.ProfileName)
	})
}
