package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type Attendee struct {
	bun.BaseModel `bun:"table:attendees"`

	ID          string `bun:"id,pk" json:"id" yaml:"id"`            // required
	Name        string `bun:"name,notnull" json:"name" yaml:"name"` // required
	Email       string `bun:"email" json:"email,omitempty" yaml:"email"`
	CompanyName string `bun:"company_name" json:"companyName,omitempty" yaml:"company_name"`
	LocationID  string `bun:"location_id,nullzero" json:"locationId,omitempty" yaml:"location_id"`

	Location *Location `bun:"rel:belongs-to,join:location_id=id" json:"location,omitempty" yaml:"-"`
}

// HasLocation reports whether the attendee shared a location.
func (a *Attendee) HasLocation() bool {
	return a.LocationID != ""
}

// EventAttendee links an attendee to an event.
type EventAttendee struct {
	bun.BaseModel `bun:"table:event_attendees"`

	ID         string `bun:"id,pk" json:"id" yaml:"id"`
	EventID    string `bun:"event_id,notnull" json:"eventId" yaml:"event_id"`          // required
	AttendeeID string `bun:"attendee_id,notnull" json:"attendeeId" yaml:"attendee_id"` // required

	Attendee *Attendee `bun:"rel:belongs-to,join:attendee_id=id" json:"attendee,omitempty" yaml:"-"`
	Event    *Event    `bun:"rel:belongs-to,join:event_id=id" json:"-" yaml:"-"`
}

func (ea *EventAttendee) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case ea.EventID == "":
		return fmt.Errorf("(*EventAttendee).Insert: event id is blank")
	case ea.AttendeeID == "":
		return fmt.Errorf("(*EventAttendee).Insert: attendee id is blank")
	}
	if ea.ID == "" {
		ea.ID = linkID(ea.EventID, ea.AttendeeID)
	}
	if _, err := db.NewInsert().Model(ea).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("(*EventAttendee).Insert: %w", err)
	}
	return nil
}
