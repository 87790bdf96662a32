package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventdesk/src-server/backend"
	"eventdesk/src-server/model"
)

// Backend is what the server exposes. *backend.Store satisfies it.
type Backend interface {
	GetSpeakers(ctx context.Context, eventID string) ([]model.EventSpeaker, error)
	GetAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error)
	GetLocationDetails(ctx context.Context, eventID string) (*model.Event, error)
	UpcomingEvents(ctx context.Context) ([]model.Event, error)
	GetUserProfile(ctx context.Context, userID string) (*model.User, error)
}

var errUnknownMethod = errors.New("unknown method")

// Dispatch runs method against b.
func Dispatch(ctx context.Context, b Backend, method string, req Request) (interface{}, error) {
	switch method {
	case MethodGetSpeakers:
		return b.GetSpeakers(ctx, req.EventID)
	case MethodGetAttendees:
		return b.GetAttendees(ctx, req.EventID)
	case MethodGetLocationDetails:
		return b.GetLocationDetails(ctx, req.EventID)
	case MethodUpcomingEvents:
		return b.UpcomingEvents(ctx)
	case MethodGetUserProfile:
		return b.GetUserProfile(ctx, req.UserID)
	}
	return nil, fmt.Errorf("%w: %s", errUnknownMethod, method)
}

// Handler serves POST /rpc/{method}.
func Handler(b Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		method := r.PathValue("method")

		var req Request
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "can't decode request: "+err.Error(), http.StatusBadRequest)
				return
			}
		}
		switch method {
		case MethodGetSpeakers, MethodGetAttendees, MethodGetLocationDetails:
			if req.EventID == "" {
				http.Error(w, "eventId is required", http.StatusBadRequest)
				return
			}
		case MethodGetUserProfile:
			if req.UserID == "" {
				http.Error(w, "userId is required", http.StatusBadRequest)
				return
			}
		}

		result, err := Dispatch(r.Context(), b, method, req)
		if err != nil {
			status := statusOf(err)
			if status >= http.StatusInternalServerError {
				slog.Error("rpc call failed", "method", method, "error", err)
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			slog.Error("can't encode rpc response", "method", method, "error", err)
		}
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errUnknownMethod):
		return http.StatusNotFound
	case errors.Is(err, backend.ErrEventNotFound), errors.Is(err, backend.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}
