package scheduler

import (
	"github.com/me/procsim/internal/queue"
	"github.com/me/procsim/pkg/model"
)

// DefaultQuantumSlice is the round-robin time slice.
const DefaultQuantumSlice = 5.0

// RoundRobin serves the ready queue in FIFO order, granting each selected
// process a fixed slice.
type RoundRobin struct {
	Slice float64
}

func (RoundRobin) Kind() model.PolicyKind { return model.PolicyRoundRobin }

func (rr RoundRobin) Quantum() float64 {
	if rr.Slice <= 0 {
		return DefaultQuantumSlice
	}
	return rr.Slice
}

func (RoundRobin) newReadySet() readySet {
	return fifoReady{q: queue.New(model.CompareProcesses)}
}

// Round-robin admission keeps the declared priority untouched.
func (RoundRobin) admit(*model.Process)        {}
func (RoundRobin) prepareReady(*model.Process) {}
