package view

import (
	"eventdesk/src-server/model"
)

const (
	// MaskedEmail replaces every real email address before display.
	MaskedEmail = "*********@gmail.com"
	// VirtualEventLabel is the location label of events without a location.
	VirtualEventLabel = "This is Virtual Event"
	// UndisclosedLocationLabel is the location label of attendees without a location.
	UndisclosedLocationLabel = "Preferred Not to Say"
)

// EventRow is an upcoming event with its display fields attached.
type EventRow struct {
	model.Event

	DetailsPageURL string `json:"detailsPage"`
	OrganizerName  string `json:"organizerName"`
	LocationLabel  string `json:"locationLabel"`
}

type SpeakerRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Picture     string `json:"picture,omitempty"`
	AboutMe     string `json:"aboutMe,omitempty"`
	CompanyName string `json:"companyName"`
}

type AttendeeRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
}

// DetailsPageURL is the link to an event's detail page on host.
func DetailsPageURL(host, eventID string) string {
	return "https://" + host + "/" + eventID
}

func DeriveEvents(host string, events []model.Event) []*EventRow {
	rows := make([]*EventRow, 0, len(events))
	for _, ev := range events {
		row := &EventRow{
			Event:          ev,
			DetailsPageURL: DetailsPageURL(host, ev.ID),
			LocationLabel:  VirtualEventLabel,
		}
		if ev.Organizer != nil {
			row.OrganizerName = ev.Organizer.Name
		}
		if ev.HasLocation() {
			row.LocationLabel = ""
			if ev.Location != nil {
				row.LocationLabel = ev.Location.Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func DeriveSpeakers(speakers []model.EventSpeaker) []SpeakerRow {
	rows := make([]SpeakerRow, 0, len(speakers))
	for _, es := range speakers {
		row := SpeakerRow{
			ID:    es.ID,
			Email: MaskedEmail,
		}
		if sp := es.Speaker; sp != nil {
			row.Name = sp.Name
			row.Phone = sp.Phone
			row.Picture = sp.Picture
			row.AboutMe = sp.AboutMe
			row.CompanyName = sp.Company
		}
		rows = append(rows, row)
	}
	return rows
}

func DeriveAttendees(attendees []model.EventAttendee) []AttendeeRow {
	rows := make([]AttendeeRow, 0, len(attendees))
	for _, ea := range attendees {
		row := AttendeeRow{
			ID:       ea.ID,
			Email:    MaskedEmail,
			Location: UndisclosedLocationLabel,
		}
		if at := ea.Attendee; at != nil {
			row.Name = at.Name
			row.CompanyName = at.CompanyName
			if at.HasLocation() {
				row.Location = ""
				if at.Location != nil {
					row.Location = at.Location.Name
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}
