// Package iotimer implements the stopwatch that gates blocked processes
// returning to the ready structure.
package iotimer

import (
	"time"

	"github.com/me/procsim/internal/clock"
)

// DefaultRequisite is how long a blocked process waits before it may be released.
const DefaultRequisite = 15 * time.Second

// Timer measures elapsed time since Start against a fixed requisite.
// A Timer is single use; replace it with a new one to reset.
type Timer struct {
	clock     clock.Clock
	requisite time.Duration
	start     time.Time
	started   bool
}

// New returns a stopped timer. A nil clock means the system clock.
func New(c clock.Clock, requisite time.Duration) *Timer {
	if c == nil {
		c = clock.System{}
	}
	return &Timer{clock: c, requisite: requisite}
}

// Start records the current instant.
func (t *Timer) Start() {
	t.start = t.clock.Now()
	t.started = true
}

// Started reports whether Start has been called.
func (t *Timer) Started() bool { return t.started }

// Requisite returns the wait the timer enforces.
func (t *Timer) Requisite() time.Duration { return t.requisite }

// Elapsed returns the time since Start, or zero if not started.
func (t *Timer) Elapsed() time.Duration {
	if !t.started {
		return 0
	}
	return t.clock.Now().Sub(t.start)
}

// Ready reports whether the requisite has elapsed since Start.
func (t *Timer) Ready() bool {
	return t.started && t.Elapsed() >= t.requisite
}
