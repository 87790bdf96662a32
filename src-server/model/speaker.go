package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type Speaker struct {
	bun.BaseModel `bun:"table:speakers"`

	ID      string `bun:"id,pk" json:"id" yaml:"id"`            // required
	Name    string `bun:"name,notnull" json:"name" yaml:"name"` // required
	Email   string `bun:"email" json:"email,omitempty" yaml:"email"`
	Phone   string `bun:"phone" json:"phone,omitempty" yaml:"phone"`
	Picture string `bun:"picture" json:"picture,omitempty" yaml:"picture"`
	AboutMe string `bun:"about_me" json:"aboutMe,omitempty" yaml:"about_me"`
	Company string `bun:"company" json:"company,omitempty" yaml:"company"`
}

// EventSpeaker links a speaker to an event.
type EventSpeaker struct {
	bun.BaseModel `bun:"table:event_speakers"`

	ID        string `bun:"id,pk" json:"id" yaml:"id"`
	EventID   string `bun:"event_id,notnull" json:"eventId" yaml:"event_id"`       // required
	SpeakerID string `bun:"speaker_id,notnull" json:"speakerId" yaml:"speaker_id"` // required

	Speaker *Speaker `bun:"rel:belongs-to,join:speaker_id=id" json:"speaker,omitempty" yaml:"-"`
	Event   *Event   `bun:"rel:belongs-to,join:event_id=id" json:"-" yaml:"-"`
}

func (es *EventSpeaker) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case es.EventID == "":
		return fmt.Errorf("(*EventSpeaker).Insert: event id is blank")
	case es.SpeakerID == "":
		return fmt.Errorf("(*EventSpeaker).Insert: speaker id is blank")
	}
	if es.ID == "" {
		es.ID = linkID(es.EventID, es.SpeakerID)
	}
	if _, err := db.NewInsert().Model(es).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("(*EventSpeaker).Insert: %w", err)
	}
	return nil
}
