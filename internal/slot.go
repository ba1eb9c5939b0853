package internal

import (
	"sync"
)

// Slot is a single-capacity handoff point between producers and one
// consuming resource. A value stays in the slot from Put until the
// consumer calls Release.
type Slot[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	full   bool
	closed bool
	value  T
}

// NewSlot creates an empty slot.
func NewSlot[T any]() (slot *Slot[T]) {
	slot = &Slot[T]{}
	slot.cond = sync.NewCond(&slot.mu)
	return
}

// Put stores value, waiting while another value occupies the slot.
// Returns false if the slot was closed.
func (s *Slot[T]) Put(value T) (ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.full && !s.closed {
		s.cond.Wait()
	}
	if s.closed {
		return
	}

	s.value = value
	s.full = true
	s.cond.Broadcast()

	ok = true
	return
}

// Take waits for a value and returns it without emptying the slot.
// Returns false once the slot is closed and empty.
func (s *Slot[T]) Take() (value T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.full && !s.closed {
		s.cond.Wait()
	}
	if !s.full {
		return
	}

	value = s.value
	ok = true
	return
}

// Release empties the slot.
func (s *Slot[T]) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.value = zero
	s.full = false
	s.cond.Broadcast()
}

// IsEmpty reports whether the slot holds no value.
func (s *Slot[T]) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.full
}

// Close wakes all waiters. A value already in the slot can still be
// taken; new Puts fail.
func (s *Slot[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.cond.Broadcast()
}
