package route

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventdesk/src-server/utils"
	"eventdesk/src-server/view"

	"github.com/google/uuid"
)

const (
	SearchFieldName     = "name"
	SearchFieldStart    = "start"
	SearchFieldLocation = "location"
)

type ListViewRespBody struct {
	ID        string           `json:"id"`
	Rows      []*view.EventRow `json:"rows"`
	Total     int              `json:"total"`
	Error     string           `json:"error,omitempty"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

func listViewResp(id string, lv *view.ListView) ListViewRespBody {
	resp := ListViewRespBody{
		ID:        id,
		Rows:      lv.Displayed(),
		Total:     len(lv.Full()),
		FetchedAt: lv.FetchedAt(),
	}
	if err := lv.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// Events serves the event list view and the stateless event query.
func Events(muxer *http.ServeMux, as *utils.AppState) {
	type SearchReqBody struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}

	lookup := func(w http.ResponseWriter, r *http.Request) (string, *view.ListView, bool) {
		id := r.PathValue("id")
		lv, ok := as.ListViews.Lookup(id)
		if !ok {
			writeText(w, http.StatusNotFound, "View not found")
			return "", nil, false
		}
		return id, lv, true
	}

	// open a list view and load the upcoming events
	muxer.HandleFunc("POST /views/events", func(w http.ResponseWriter, r *http.Request) {
		lv := as.NewListView()
		if err := lv.Load(r.Context()); err != nil {
			slog.Warn("list view opened without events", "error", err)
		}
		id := as.ListViews.Add(lv)
		writeJSON(w, http.StatusCreated, listViewResp(id.String(), lv))
	})

	muxer.HandleFunc("GET /views/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		if id, lv, ok := lookup(w, r); ok {
			writeJSON(w, http.StatusOK, listViewResp(id, lv))
		}
	})

	// fetch again, keeping the session
	muxer.HandleFunc("POST /views/events/{id}/refresh", func(w http.ResponseWriter, r *http.Request) {
		id, lv, ok := lookup(w, r)
		if !ok {
			return
		}
		if err := lv.Load(r.Context()); errors.Is(err, view.ErrSuperseded) {
			writeText(w, http.StatusConflict, "Superseded by a newer refresh")
			return
		}
		writeJSON(w, http.StatusOK, listViewResp(id, lv))
	})

	muxer.HandleFunc("POST /views/events/{id}/search", func(w http.ResponseWriter, r *http.Request) {
		id, lv, ok := lookup(w, r)
		if !ok {
			return
		}
		var reqBody SearchReqBody
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			writeText(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		switch reqBody.Field {
		case SearchFieldName:
			lv.SearchByName(reqBody.Value)
		case SearchFieldStart:
			threshold, err := as.ParseStartDate(reqBody.Value)
			if err != nil {
				writeText(w, http.StatusBadRequest, "Can't parse start date: "+err.Error())
				return
			}
			lv.FilterByStartDate(threshold)
		case SearchFieldLocation:
			lv.SearchByLocation(reqBody.Value)
		default:
			writeText(w, http.StatusBadRequest, "Unknown search field, use name, start or location")
			return
		}
		writeJSON(w, http.StatusOK, listViewResp(id, lv))
	})

	muxer.HandleFunc("POST /views/events/{id}/reset", func(w http.ResponseWriter, r *http.Request) {
		id, lv, ok := lookup(w, r)
		if !ok {
			return
		}
		lv.Reset()
		writeJSON(w, http.StatusOK, listViewResp(id, lv))
	})

	muxer.HandleFunc("DELETE /views/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _, ok := lookup(w, r)
		if !ok {
			return
		}
		as.ListViews.Delete(uuid.MustParse(id))
		w.WriteHeader(http.StatusNoContent)
	})

	// all criteria given at once must hold together
	muxer.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		threshold, err := as.ParseStartDate(query.Get("start"))
		if err != nil {
			writeText(w, http.StatusBadRequest, "Can't parse start date: "+err.Error())
			return
		}

		startTimer := time.Now()
		events, err := as.Backend.UpcomingEvents(r.Context())
		as.MetricChans.ObserveFetch(view.ActionUpcomingEvents, time.Since(startTimer), err)
		if err != nil {
			slog.Error("can't fetch upcoming events", "error", err)
			writeText(w, http.StatusBadGateway, "Can't fetch upcoming events")
			return
		}

		rows := view.Apply(
			view.DeriveEvents(as.Config.GetHostname(), events),
			view.NameContains(query.Get("name")),
			view.StartsAtOrAfter(threshold),
			view.LocationContains(query.Get("location")),
		)
		writeJSON(w, http.StatusOK, rows)
	})
}
