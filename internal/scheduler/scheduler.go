package scheduler

import (
	"context"

	"github.com/me/procsim/pkg/model"
)

// Scheduler drives a set of admitted processes to completion under one policy.
type Scheduler interface {
	// AddProcess admits a process through the policy's admission rule.
	AddProcess(p model.Process) error

	// Run loops until no unfinished work remains or ctx is cancelled.
	Run(ctx context.Context) error

	// Tick runs a single scheduling iteration. Used for testing.
	Tick(ctx context.Context) error

	// Status reports container sizes and the current process.
	Status() model.Status
}
