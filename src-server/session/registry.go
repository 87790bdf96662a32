// Package session keeps per-client view instances alive between requests.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one stored value and when it was added.
type Entry[T any] struct {
	DateAdded time.Time
	Value     T
}

// Registry maps session ids to values. Entries are dropped by Sweep once
// they are older than the registry's TTL.
type Registry[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]Entry[T]
}

func NewRegistry[T any](ttl time.Duration) *Registry[T] {
	return &Registry[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]Entry[T]),
	}
}

// WithClock replaces the clock used to stamp and expire entries.
func (r *Registry[T]) WithClock(now func() time.Time) *Registry[T] {
	r.now = now
	return r
}

// Add stores v under a new session id.
func (r *Registry[T]) Add(v T) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = Entry[T]{DateAdded: r.now(), Value: v}
	return id
}

// Get returns the value of id. Expired entries are reported as missing even
// before they are swept.
func (r *Registry[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	if !ok || r.expired(entry) {
		var zero T
		return zero, false
	}
	return entry.Value, true
}

// Lookup parses id and returns its value.
func (r *Registry[T]) Lookup(id string) (T, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		var zero T
		return zero, false
	}
	return r.Get(parsed)
}

func (r *Registry[T]) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep drops every expired entry and returns their ids.
func (r *Registry[T]) Sweep() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := make([]uuid.UUID, 0)
	for id, entry := range r.entries {
		if r.expired(entry) {
			delete(r.entries, id)
			removed = append(removed, id)
		}
	}
	return removed
}

func (r *Registry[T]) expired(entry Entry[T]) bool {
	return r.ttl > 0 && r.now().Sub(entry.DateAdded) > r.ttl
}
