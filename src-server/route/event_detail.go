package route

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventdesk/src-server/model"
	"eventdesk/src-server/utils"
	"eventdesk/src-server/view"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	SectionSpeakers  = "speakers"
	SectionLocation  = "location"
	SectionAttendees = "attendees"
	SectionAll       = "all"
)

type SectionRespBody[T any] struct {
	Value     T          `json:"value"`
	Error     string     `json:"error,omitempty"`
	FetchedAt *time.Time `json:"fetchedAt,omitempty"`
}

func sectionResp[T any](o view.Outcome[T]) SectionRespBody[T] {
	resp := SectionRespBody[T]{Value: o.Value}
	if o.Err != nil {
		resp.Error = o.Err.Error()
	}
	if o.Done() {
		fetchedAt := o.FetchedAt
		resp.FetchedAt = &fetchedAt
	}
	return resp
}

type DetailViewRespBody struct {
	ID        string                              `json:"id"`
	EventID   string                              `json:"eventId"`
	Speakers  SectionRespBody[[]view.SpeakerRow]  `json:"speakers"`
	Location  SectionRespBody[*model.Event]       `json:"location"`
	Attendees SectionRespBody[[]view.AttendeeRow] `json:"attendees"`
}

func detailViewResp(id string, dv *view.DetailView) DetailViewRespBody {
	return DetailViewRespBody{
		ID:        id,
		EventID:   dv.EventID(),
		Speakers:  sectionResp(dv.Speakers()),
		Location:  sectionResp(dv.Location()),
		Attendees: sectionResp(dv.Attendees()),
	}
}

// loadAll fetches every section at once. Each section keeps its own
// outcome, so one failure does not stop the others.
func loadAll(ctx context.Context, dv *view.DetailView) {
	var g errgroup.Group
	g.Go(func() error {
		_, err := dv.LoadSpeakers(ctx)
		return err
	})
	g.Go(func() error {
		_, err := dv.LoadLocation(ctx)
		return err
	})
	g.Go(func() error {
		_, err := dv.LoadAttendees(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Debug("some event sections failed", "event_id", dv.EventID(), "error", err)
	}
}

// EventDetail serves the event detail view.
func EventDetail(muxer *http.ServeMux, as *utils.AppState) {
	type CreateRespBody struct {
		ID      string `json:"id"`
		EventID string `json:"eventId"`
	}

	lookup := func(w http.ResponseWriter, r *http.Request) (string, *view.DetailView, bool) {
		id := r.PathValue("id")
		dv, ok := as.DetailViews.Lookup(id)
		if !ok {
			writeText(w, http.StatusNotFound, "View not found")
			return "", nil, false
		}
		return id, dv, true
	}

	navigator := view.NavigatorFunc(func(ref view.PageReference) {
		slog.Debug("navigate", "url", ref.URL())
	})

	muxer.HandleFunc("POST /views/event/{eventId}", func(w http.ResponseWriter, r *http.Request) {
		eventID := r.PathValue("eventId")
		dv := as.NewDetailView(eventID, navigator)
		id := as.DetailViews.Add(dv)
		writeJSON(w, http.StatusCreated, CreateRespBody{ID: id.String(), EventID: eventID})
	})

	muxer.HandleFunc("GET /views/event/{id}", func(w http.ResponseWriter, r *http.Request) {
		if id, dv, ok := lookup(w, r); ok {
			writeJSON(w, http.StatusOK, detailViewResp(id, dv))
		}
	})

	muxer.HandleFunc("DELETE /views/event/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _, ok := lookup(w, r)
		if !ok {
			return
		}
		as.DetailViews.Delete(uuid.MustParse(id))
		w.WriteHeader(http.StatusNoContent)
	})

	// trigger the fetch of one section
	muxer.HandleFunc("GET /views/event/{id}/{section}", func(w http.ResponseWriter, r *http.Request) {
		id, dv, ok := lookup(w, r)
		if !ok {
			return
		}

		var err error
		switch r.PathValue("section") {
		case SectionSpeakers:
			_, err = dv.LoadSpeakers(r.Context())
		case SectionLocation:
			_, err = dv.LoadLocation(r.Context())
		case SectionAttendees:
			_, err = dv.LoadAttendees(r.Context())
		case SectionAll:
			loadAll(r.Context(), dv)
		default:
			writeText(w, http.StatusNotFound, "Unknown section, use speakers, location, attendees or all")
			return
		}

		switch {
		case errors.Is(err, view.ErrSuperseded):
			writeText(w, http.StatusConflict, "Superseded by a newer fetch")
		case err != nil:
			writeJSON(w, http.StatusBadGateway, detailViewResp(id, dv))
		default:
			writeJSON(w, http.StatusOK, detailViewResp(id, dv))
		}
	})

	// go to the creation screen of a record linked to the event
	muxer.HandleFunc("POST /views/event/{id}/new/{object}", func(w http.ResponseWriter, r *http.Request) {
		_, dv, ok := lookup(w, r)
		if !ok {
			return
		}
		var ref view.PageReference
		switch r.PathValue("object") {
		case "speaker", view.ObjectEventSpeaker:
			ref = dv.CreateSpeaker()
		case "attendee", view.ObjectEventAttendee:
			ref = dv.CreateAttendee()
		default:
			writeText(w, http.StatusNotFound, "Unknown object, use speaker or attendee")
			return
		}
		http.Redirect(w, r, ref.URL(), http.StatusSeeOther)
	})
}
