package scheduler

import (
	"golang.org/x/exp/constraints"

	"github.com/me/procsim/internal/bst"
	"github.com/me/procsim/pkg/model"
)

// DefaultPriorityQuantum is large enough that priority-scheduled processes
// only leave the CPU by blocking or finishing.
const DefaultPriorityQuantum = 1024.0

// Priority always runs the highest-priority ready process. Priorities are
// recomputed from the remaining work each time a process re-enters the ready
// index, so compute-heavy processes climb and I/O-heavy ones sink.
type Priority struct {
	Budget float64
}

func (Priority) Kind() model.PolicyKind { return model.PolicyPriority }

func (pp Priority) Quantum() float64 {
	if pp.Budget <= 0 {
		return DefaultPriorityQuantum
	}
	return pp.Budget
}

func (Priority) newReadySet() readySet {
	return treeReady{t: bst.New(model.ComparePriority)}
}

func (Priority) admit(p *model.Process) {
	CalculateInitialPriority(p)
}

func (Priority) prepareReady(p *model.Process) {
	AdjustProcessPriority(p)
}

// CalculateInitialPriority scans the whole instruction list once.
func CalculateInitialPriority(p *model.Process) {
	p.SetPriority(scanPriority(p.Priority(), p.Instructions()))
}

// AdjustProcessPriority rescans only the instructions that are still to run.
func AdjustProcessPriority(p *model.Process) {
	p.SetPriority(scanPriority(p.Priority(), p.Remaining()))
}

// scanPriority applies -1 per I/O and +1 per compute instruction, bounded by
// [MinPriority, MaxPriority] at every step and on the result.
func scanPriority(prio int, instructions []string) int {
	for _, ins := range instructions {
		if ins == model.IOInstruction {
			prio = clamp(prio-1, model.MinPriority, model.MaxPriority)
		} else {
			prio = clamp(prio+1, model.MinPriority, model.MaxPriority)
		}
	}
	return clamp(prio, model.MinPriority, model.MaxPriority)
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
