package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventdesk/src-server/backend"
	"eventdesk/src-server/model"
	"eventdesk/src-server/utils"
	"eventdesk/src-server/view"
)

// Records serves the creation screens the detail view navigates to.
func Records(muxer *http.ServeMux, as *utils.AppState) {
	type NewRecordRespBody struct {
		Object             string            `json:"object"`
		DefaultFieldValues map[string]string `json:"defaultFieldValues"`
	}

	known := func(object string) bool {
		return object == view.ObjectEventSpeaker || object == view.ObjectEventAttendee
	}

	// the pre-filled form of a new record
	muxer.HandleFunc("GET /records/{object}/new", func(w http.ResponseWriter, r *http.Request) {
		object := r.PathValue("object")
		if !known(object) {
			writeText(w, http.StatusNotFound, "Unknown object")
			return
		}
		defaults, err := view.DecodeDefaultFieldValues(r.URL.Query().Get("defaultFieldValues"))
		if err != nil {
			writeText(w, http.StatusBadRequest, "Invalid defaultFieldValues: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, NewRecordRespBody{Object: object, DefaultFieldValues: defaults})
	})

	muxer.HandleFunc("POST /records/{object}", func(w http.ResponseWriter, r *http.Request) {
		object := r.PathValue("object")
		if !known(object) {
			writeText(w, http.StatusNotFound, "Unknown object")
			return
		}

		var (
			record interface{}
			create func() error
		)
		switch object {
		case view.ObjectEventSpeaker:
			es := new(model.EventSpeaker)
			if err := json.NewDecoder(r.Body).Decode(es); err != nil {
				writeText(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if es.EventID == "" || es.SpeakerID == "" {
				writeText(w, http.StatusBadRequest, "Please provide an eventId and a speakerId")
				return
			}
			record = es
			create = func() error { return as.Store.CreateEventSpeaker(r.Context(), es) }
		case view.ObjectEventAttendee:
			ea := new(model.EventAttendee)
			if err := json.NewDecoder(r.Body).Decode(ea); err != nil {
				writeText(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if ea.EventID == "" || ea.AttendeeID == "" {
				writeText(w, http.StatusBadRequest, "Please provide an eventId and an attendeeId")
				return
			}
			record = ea
			create = func() error { return as.Store.CreateEventAttendee(r.Context(), ea) }
		}

		startTimer := time.Now()
		if err := create(); err != nil {
			if errors.Is(err, backend.ErrEventNotFound) {
				writeText(w, http.StatusNotFound, "Event not found")
				return
			}
			slog.Error("can't create record", "object", object, "error", err)
			writeText(w, http.StatusInternalServerError, "Can't create record")
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, time.Since(startTimer))
		writeJSON(w, http.StatusCreated, record)
	})
}
