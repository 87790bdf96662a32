package model

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

// Seed is a YAML fixture of backend records.
type Seed struct {
	Locations      []Location      `yaml:"locations"`
	Organizers     []Organizer     `yaml:"organizers"`
	Events         []Event         `yaml:"events"`
	Speakers       []Speaker       `yaml:"speakers"`
	EventSpeakers  []EventSpeaker  `yaml:"event_speakers"`
	Attendees      []Attendee      `yaml:"attendees"`
	EventAttendees []EventAttendee `yaml:"event_attendees"`
	Users          []User          `yaml:"users"`
}

func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSeedFile: %w", err)
	}
	seed := new(Seed)
	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, fmt.Errorf("LoadSeedFile: %w", err)
	}
	return seed, nil
}

// Apply writes every record of the seed in one transaction. Existing rows
// are left untouched, except events which are upserted.
func (s *Seed) Apply(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		insert := func(model interface{}, n int) error {
			if n == 0 {
				return nil
			}
			_, err := tx.NewInsert().
				Model(model).
				On("CONFLICT DO NOTHING").
				Exec(ctx)
			return err
		}

		if err := insert(&s.Locations, len(s.Locations)); err != nil {
			return fmt.Errorf("locations: %w", err)
		}
		if err := insert(&s.Organizers, len(s.Organizers)); err != nil {
			return fmt.Errorf("organizers: %w", err)
		}
		for i := range s.Events {
			ev := &s.Events[i]
			for _, field := range []*string{&ev.StartDateTime, &ev.EndDateTime} {
				normalized, err := normalizeDateTime(*field)
				if err != nil {
					return fmt.Errorf("event %s: %w", ev.ID, err)
				}
				*field = normalized
			}
			if err := ev.Upsert(ctx, tx); err != nil {
				return err
			}
		}
		if err := insert(&s.Speakers, len(s.Speakers)); err != nil {
			return fmt.Errorf("speakers: %w", err)
		}
		for i := range s.EventSpeakers {
			if err := s.EventSpeakers[i].Insert(ctx, tx); err != nil {
				return err
			}
		}
		if err := insert(&s.Attendees, len(s.Attendees)); err != nil {
			return fmt.Errorf("attendees: %w", err)
		}
		for i := range s.EventAttendees {
			if err := s.EventAttendees[i].Insert(ctx, tx); err != nil {
				return err
			}
		}
		for i := range s.Users {
			if err := s.Users[i].Upsert(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("(*Seed).Apply: %w", err)
	}
	return nil
}

// normalizeDateTime accepts RFC 3339 input and rewrites it in DateTimeLayout.
func normalizeDateTime(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if _, err := time.Parse(DateTimeLayout, v); err == nil {
		return v, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return "", fmt.Errorf("invalid date time %q: %w", v, err)
	}
	return FormatDateTime(t), nil
}
