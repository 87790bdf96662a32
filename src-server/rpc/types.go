// Package rpc carries the backend calls of the event views over JSON/HTTP.
package rpc

import (
	"fmt"
)

const (
	MethodGetSpeakers        = "getSpeakers"
	MethodGetAttendees       = "getAttendees"
	MethodGetLocationDetails = "getLocationDetails"
	MethodUpcomingEvents     = "upcomingEvents"
	MethodGetUserProfile     = "getUserProfile"
)

// Methods lists every method the server answers.
var Methods = []string{
	MethodGetSpeakers,
	MethodGetAttendees,
	MethodGetLocationDetails,
	MethodUpcomingEvents,
	MethodGetUserProfile,
}

// Request is the body of every call. Unused fields are left blank.
type Request struct {
	EventID string `json:"eventId,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// Error is a failed call as seen by the client.
type Error struct {
	Method  string `json:"method"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc %s: %d %s", e.Method, e.Status, e.Message)
}
