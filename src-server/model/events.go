package model

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// DateTimeLayout is the stored representation of event date-times. Every
// value is UTC with millisecond precision, so comparing two stored strings
// lexicographically gives the same answer as comparing the instants.
const DateTimeLayout = "2006-01-02T15:04:05.000Z"

// FormatDateTime renders t in DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID            string `bun:"id,pk" json:"id" yaml:"id"`                                 // required
	Name          string `bun:"name" json:"name,omitempty" yaml:"name"`
	OrganizerID   string `bun:"organizer_id,notnull" json:"organizerId" yaml:"organizer_id"` // required
	LocationID    string `bun:"location_id,nullzero" json:"locationId,omitempty" yaml:"location_id"`
	StartDateTime string `bun:"start_date_time,notnull" json:"startDateTime" yaml:"start_date_time"` // required
	EndDateTime   string `bun:"end_date_time,nullzero" json:"endDateTime,omitempty" yaml:"end_date_time"`
	CreatedAt     int64  `bun:"created_at,notnull" json:"createdAt" yaml:"-"`

	Organizer *Organizer `bun:"rel:belongs-to,join:organizer_id=id" json:"organizer,omitempty" yaml:"-"`
	Location  *Location  `bun:"rel:belongs-to,join:location_id=id" json:"location,omitempty" yaml:"-"`
}

// HasLocation reports whether the event references a location record.
func (e *Event) HasLocation() bool {
	return e.LocationID != ""
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.OrganizerID == "":
		return fmt.Errorf("(*Event).Upsert: organizer id is blank")
	case e.StartDateTime == "":
		return fmt.Errorf("(*Event).Upsert: start date time is blank")
	}
	start, err := time.Parse(DateTimeLayout, e.StartDateTime)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: start date time is invalid: %w", err)
	}
	if e.EndDateTime != "" {
		end, err := time.Parse(DateTimeLayout, e.EndDateTime)
		if err != nil {
			return fmt.Errorf("(*Event).Upsert: end date time is invalid: %w", err)
		}
		if end.Before(start) {
			return fmt.Errorf("(*Event).Upsert: start date must be before end date")
		}
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}

	if _, err := db.NewInsert().
		Model(e).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("organizer_id = EXCLUDED.organizer_id").
		Set("location_id = EXCLUDED.location_id").
		Set("start_date_time = EXCLUDED.start_date_time").
		Set("end_date_time = EXCLUDED.end_date_time").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}
	return nil
}
