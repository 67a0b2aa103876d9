// Package clock abstracts the monotonic time source used by the I/O timer.
package clock

import (
	"sync"
	"time"
)

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Clock reports the current instant. Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

// System is the wall clock. time.Now carries a monotonic reading, so
// Sub on two of its values is immune to wall clock jumps.
type System struct{}

func (System) Now() time.Time { return NowFunc() }

// Fake is a manually advanced clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
