package view

import (
	"context"
	"errors"
	"time"
)

// ErrSuperseded is returned by a fetch whose result was dropped because the
// same action was triggered again before it completed.
var ErrSuperseded = errors.New("superseded by a newer fetch")

// task tracks the in-flight fetch of one action. A new begin cancels the
// previous fetch; only the latest generation may commit its result. Callers
// hold the owning view's lock around every method.
type task struct {
	gen    uint64
	cancel context.CancelFunc
}

func (t *task) begin(parent context.Context) (context.Context, uint64) {
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	t.gen++
	t.cancel = cancel
	return ctx, t.gen
}

func (t *task) current(gen uint64) bool {
	return gen == t.gen
}

// finish releases the context of gen if it is still the latest one.
func (t *task) finish(gen uint64) {
	if gen == t.gen && t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Outcome is the result of the latest completed fetch of one action.
type Outcome[T any] struct {
	Value     T
	Err       error
	FetchedAt time.Time
}

// Done reports whether a fetch has completed at least once.
func (o Outcome[T]) Done() bool {
	return !o.FetchedAt.IsZero()
}
