package cpu

import (
	"sync/atomic"
)

// Liveness is the shared shutdown flag. It starts alive and, once
// killed, stays dead.
type Liveness struct {
	dead atomic.Bool
}

// NewLiveness creates a live flag.
func NewLiveness() *Liveness {
	return &Liveness{}
}

// Kill clears the flag.
func (l *Liveness) Kill() {
	l.dead.Store(true)
}

// Alive reports whether the flag is still set.
func (l *Liveness) Alive() bool {
	return !l.dead.Load()
}
