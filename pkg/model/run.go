package model

import "time"

// Run is the write-once record of a completed simulation.
type Run struct {
	ID           string           `json:"id"`
	Policy       PolicyKind       `json:"policy"`
	Source       string           `json:"source"`
	ProcessCount int              `json:"process_count"`
	Ticks        int              `json:"ticks"`
	Executed     int              `json:"executed"` // Instruction steps that made progress
	Processes    []ProcessSummary `json:"processes"`
	Transitions  []Transition     `json:"transitions,omitempty"`
	StateSummary StateSummary     `json:"state_summary"` // Computed field, not stored
	Error        string           `json:"error,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	CompletedAt  *time.Time       `json:"completed_at"`
}

// Duration returns the wall time of the run, or zero while it is still open.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.CreatedAt)
}

// ProcessSummary is the per-process outcome of a run.
type ProcessSummary struct {
	Name            string       `json:"name"`
	InitialPriority int          `json:"initial_priority"`
	FinalPriority   int          `json:"final_priority"`
	Instructions    int          `json:"instructions"`
	State           ProcessState `json:"state"`
	Selections      int          `json:"selections"`
	IOWaits         int          `json:"io_waits"`
	Preemptions     int          `json:"preemptions"`
	FinishedTick    int          `json:"finished_tick,omitempty"`
}

// Transition is one entry in a run's state timeline.
type Transition struct {
	Tick     int          `json:"tick"`
	Process  string       `json:"process"`
	Priority int          `json:"priority"`
	From     ProcessState `json:"from"`
	To       ProcessState `json:"to"`
}

// StateSummary provides an aggregate count of final process states within a Run.
type StateSummary struct {
	Total    int `json:"total"`
	Ready    int `json:"ready"`
	Running  int `json:"running"`
	Blocked  int `json:"blocked"`
	Finished int `json:"finished"`
}

// ComputeStateSummary calculates the StateSummary from a slice of ProcessSummaries.
func ComputeStateSummary(procs []ProcessSummary) StateSummary {
	s := StateSummary{Total: len(procs)}
	for _, p := range procs {
		switch p.State {
		case StateReady:
			s.Ready++
		case StateRunningActive, StateRunningPreempted:
			s.Running++
		case StateBlocked:
			s.Blocked++
		case StateFinished:
			s.Finished++
		}
	}
	return s
}
