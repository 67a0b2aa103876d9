package scheduler

import (
	"fmt"

	"github.com/me/procsim/pkg/model"
)

// Policy selects the next process and decides how processes enter the ready
// structure. The set of policies is closed: RoundRobin and Priority.
type Policy interface {
	Kind() model.PolicyKind

	// Quantum is the budget granted to a newly selected process.
	Quantum() float64

	newReadySet() readySet
	admit(p *model.Process)
	prepareReady(p *model.Process)
}

// NewPolicy builds the policy named by kind.
func NewPolicy(kind model.PolicyKind, cfg Config) (Policy, error) {
	switch kind {
	case model.PolicyRoundRobin:
		return RoundRobin{Slice: cfg.QuantumSlice}, nil
	case model.PolicyPriority:
		return Priority{Budget: cfg.PriorityQuantum}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", kind)
}
