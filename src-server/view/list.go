package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const ActionUpcomingEvents = "upcomingEvents"

// ListView shows upcoming events and narrows them by name, start date or
// location. Every search replaces the displayed subset and is computed from
// the last fetched result; searches never fetch.
type ListView struct {
	source UpcomingSource
	host   string
	opts   *options

	mu        sync.Mutex
	fetch     task
	full      []*EventRow
	displayed []*EventRow
	err       error
	fetchedAt time.Time
}

// NewListView builds a list view whose detail links point at host.
func NewListView(source UpcomingSource, host string, opts ...Option) *ListView {
	return &ListView{
		source: source,
		host:   host,
		opts:   newOptions(opts),
	}
}

// Load fetches the upcoming events and shows all of them. On failure both
// the full result and the displayed subset are cleared.
func (v *ListView) Load(ctx context.Context) error {
	v.opts.logProfile(ctx)

	v.mu.Lock()
	fetchCtx, gen := v.fetch.begin(ctx)
	v.mu.Unlock()

	start := time.Now()
	events, err := v.source.UpcomingEvents(fetchCtx)
	elapsed := time.Since(start)
	v.opts.report(ActionUpcomingEvents, elapsed, err)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.fetch.current(gen) {
		slog.Debug("dropping superseded fetch", "action", ActionUpcomingEvents)
		return ErrSuperseded
	}
	defer v.fetch.finish(gen)

	v.fetchedAt = time.Now()
	if err != nil {
		v.err = fmt.Errorf("(*ListView).Load: %w", err)
		v.full = nil
		v.displayed = nil
		slog.Warn("can't fetch upcoming events", "error", err)
		return v.err
	}

	v.err = nil
	v.full = DeriveEvents(v.host, events)
	v.displayed = Apply(v.full)
	slog.Debug("upcoming events loaded", "count", len(v.full), "elapsed", elapsed)
	return nil
}

// SearchByName shows the events whose name contains keyword, ignoring case
// and surrounding spaces. A blank keyword shows every event.
func (v *ListView) SearchByName(keyword string) []*EventRow {
	return v.show(NameContains(keyword))
}

// FilterByStartDate shows the events starting at or after threshold, a
// date-time in model.DateTimeLayout. A blank threshold shows every event.
func (v *ListView) FilterByStartDate(threshold string) []*EventRow {
	return v.show(StartsAtOrAfter(threshold))
}

// SearchByLocation shows the events whose location label contains keyword.
// Keywords shorter than two characters show every event.
func (v *ListView) SearchByLocation(keyword string) []*EventRow {
	return v.show(LocationContains(keyword))
}

// Reset shows every fetched event.
func (v *ListView) Reset() []*EventRow {
	return v.show()
}

func (v *ListView) show(preds ...Predicate) []*EventRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.displayed = Apply(v.full, preds...)
	return Apply(v.displayed)
}

// Displayed returns the rows currently shown.
func (v *ListView) Displayed() []*EventRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Apply(v.displayed)
}

// Full returns every row of the last successful fetch.
func (v *ListView) Full() []*EventRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Apply(v.full)
}

// Err returns the error of the last fetch, if it failed.
func (v *ListView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *ListView) FetchedAt() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fetchedAt
}
