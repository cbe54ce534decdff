package intersection

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrDuplicateID is returned by Add when the id is already registered.
	ErrDuplicateID = errors.New("duplicate approach id")
	// ErrNotFound is returned when no approach has the requested id.
	ErrNotFound = errors.New("approach not found")
)

// Registry owns the ordered set of approaches. Insertion order is the
// allocation order and the green-slot scan order; ids only key lookups.
// The registry is not safe for concurrent use and is never mutated while a
// run is in progress.
type Registry struct {
	approaches []*Approach
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers an approach. It fails if the id is already present.
func (r *Registry) Add(a *Approach) error {
	if _, ok := r.Find(a.ID); ok {
		return fmt.Errorf("add approach %d: %w", a.ID, ErrDuplicateID)
	}
	r.approaches = append(r.approaches, a)
	return nil
}

// Remove deletes the approach with the given id, preserving the relative
// order of the remaining approaches.
func (r *Registry) Remove(id int) error {
	pos, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("remove approach %d: %w", id, ErrNotFound)
	}
	r.approaches = append(r.approaches[:pos], r.approaches[pos+1:]...)
	return nil
}

// Find returns the position of the approach with the given id.
func (r *Registry) Find(id int) (int, bool) {
	for i, a := range r.approaches {
		if a.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Len returns the number of registered approaches.
func (r *Registry) Len() int {
	return len(r.approaches)
}

// At returns the approach at the given position.
func (r *Registry) At(pos int) *Approach {
	return r.approaches[pos]
}

// List yields a snapshot of every approach in insertion order. The sequence
// is finite and restartable; snapshots are detached from live state.
func (r *Registry) List() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for _, a := range r.approaches {
			if !yield(a.snapshot()) {
				return
			}
		}
	}
}

// Queues returns the current queue length of every approach in insertion
// order, the snapshot the allocator works from.
func (r *Registry) Queues() []int {
	queues := make([]int, len(r.approaches))
	for i, a := range r.approaches {
		queues[i] = a.Queue
	}
	return queues
}

// ResetCounters zeroes the run counters of every approach. Must be called
// before a run so runs do not contaminate each other.
func (r *Registry) ResetCounters() {
	for _, a := range r.approaches {
		a.ResetCounters()
	}
}
