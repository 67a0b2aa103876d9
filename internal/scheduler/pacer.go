package scheduler

import (
	"context"
	"time"
)

// Pacer slows execution down for human-readable output. cost is in quantum units.
type Pacer interface {
	Pace(ctx context.Context, cost float64) error
}

// NopPacer never waits.
type NopPacer struct{}

func (NopPacer) Pace(ctx context.Context, _ float64) error { return ctx.Err() }

// SleepPacer waits Unit per quantum unit consumed.
type SleepPacer struct {
	Unit time.Duration
}

func (s SleepPacer) Pace(ctx context.Context, cost float64) error {
	d := time.Duration(cost * float64(s.Unit))
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
