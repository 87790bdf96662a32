package view

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const (
	PageTypeObjectPage = "standard__objectPage"
	ActionNew          = "new"

	ObjectEventSpeaker  = "EventSpeaker"
	ObjectEventAttendee = "EventAttendee"

	// FieldEvent is the back-reference field pre-filled on new records.
	FieldEvent = "Event"
)

// PageReference describes a navigation target.
type PageReference struct {
	Type       string         `json:"type"`
	Attributes PageAttributes `json:"attributes"`
	State      PageState      `json:"state"`
}

type PageAttributes struct {
	ObjectAPIName string `json:"objectApiName"`
	ActionName    string `json:"actionName"`
}

type PageState struct {
	DefaultFieldValues string `json:"defaultFieldValues,omitempty"`
}

// Navigator moves the user to another page. Navigation is fire-and-forget.
type Navigator interface {
	Navigate(ref PageReference)
}

type NavigatorFunc func(ref PageReference)

func (f NavigatorFunc) Navigate(ref PageReference) { f(ref) }

// NewRecordPage is the creation screen of object with defaults pre-filled.
func NewRecordPage(object string, defaults map[string]string) PageReference {
	return PageReference{
		Type: PageTypeObjectPage,
		Attributes: PageAttributes{
			ObjectAPIName: object,
			ActionName:    ActionNew,
		},
		State: PageState{
			DefaultFieldValues: EncodeDefaultFieldValues(defaults),
		},
	}
}

// URL renders the reference as a path on this server.
func (r PageReference) URL() string {
	u := url.URL{Path: "/records/" + url.PathEscape(r.Attributes.ObjectAPIName) + "/" + r.Attributes.ActionName}
	if r.State.DefaultFieldValues != "" {
		u.RawQuery = url.Values{"defaultFieldValues": {r.State.DefaultFieldValues}}.Encode()
	}
	return u.String()
}

// EncodeDefaultFieldValues renders defaults as comma separated field=value
// pairs, sorted by field, with values percent-encoded.
func EncodeDefaultFieldValues(defaults map[string]string) string {
	fields := make([]string, 0, len(defaults))
	for field := range defaults {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	pairs := make([]string, 0, len(fields))
	for _, field := range fields {
		value := strings.ReplaceAll(url.QueryEscape(defaults[field]), "+", "%20")
		pairs = append(pairs, field+"="+value)
	}
	return strings.Join(pairs, ",")
}

// DecodeDefaultFieldValues reverses EncodeDefaultFieldValues.
func DecodeDefaultFieldValues(encoded string) (map[string]string, error) {
	defaults := make(map[string]string)
	if encoded == "" {
		return defaults, nil
	}
	for _, pair := range strings.Split(encoded, ",") {
		field, value, ok := strings.Cut(pair, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("DecodeDefaultFieldValues: malformed pair %q", pair)
		}
		decoded, err := url.PathUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("DecodeDefaultFieldValues: %w", err)
		}
		defaults[field] = decoded
	}
	return defaults, nil
}
