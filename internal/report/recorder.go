// Package report turns scheduler events into a console trace and into the
// model.Run record that is archived after a simulation.
package report

import (
	"github.com/google/uuid"

	"github.com/me/procsim/internal/clock"
	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/pkg/model"
)

// counters are keyed by process name, so processes sharing a name share them.
type counters struct {
	initialPriority int
	selections      int
	ioWaits         int
	preemptions     int
	finishedTick    int
}

// Recorder observes a run and accumulates its model.Run.
type Recorder struct {
	run    model.Run
	byName map[string]*counters
	clock  clock.Clock
}

var _ scheduler.Observer = (*Recorder)(nil)

// NewRecorder opens a run record with a fresh id. Timestamps come from c, or
// from the system clock when c is nil.
func NewRecorder(policy model.PolicyKind, source string, c clock.Clock) *Recorder {
	if c == nil {
		c = clock.System{}
	}
	return &Recorder{
		run: model.Run{
			ID:        "run_" + uuid.New().String(),
			Policy:    policy,
			Source:    source,
			CreatedAt: c.Now().UTC(),
		},
		byName: make(map[string]*counters),
		clock:  c,
	}
}

// ID returns the id of the run being recorded.
func (r *Recorder) ID() string { return r.run.ID }

// Admitted notes the declared priorities of the workload.
func (r *Recorder) Admitted(procs []model.Process) {
	r.run.ProcessCount += len(procs)
	for _, p := range procs {
		if _, ok := r.byName[p.Name()]; !ok {
			r.byName[p.Name()] = &counters{initialPriority: p.Priority()}
		}
	}
}

func (r *Recorder) counters(name string) *counters {
	c, ok := r.byName[name]
	if !ok {
		c = &counters{}
		r.byName[name] = c
	}
	return c
}

func (r *Recorder) OnInstruction(model.ProcessView) { r.run.Executed++ }

func (r *Recorder) OnTransition(t model.Transition) {
	r.run.Transitions = append(r.run.Transitions, t)
	c := r.counters(t.Process)
	switch t.To {
	case model.StateRunningActive:
		c.selections++
	case model.StateBlocked:
		c.ioWaits++
	case model.StateRunningPreempted:
		c.preemptions++
	case model.StateFinished:
		c.finishedTick = t.Tick
	}
}

func (r *Recorder) OnStatus(s model.Status) { r.run.Ticks = s.Tick }

// Finish closes the record. final lists every process the scheduler still
// holds, in any container; runErr is the error Run returned, if any.
func (r *Recorder) Finish(final []model.Process, runErr error) *model.Run {
	now := r.clock.Now().UTC()
	r.run.CompletedAt = &now
	if runErr != nil {
		r.run.Error = runErr.Error()
	}

	r.run.Processes = make([]model.ProcessSummary, 0, len(final))
	for _, p := range final {
		c := r.counters(p.Name())
		r.run.Processes = append(r.run.Processes, model.ProcessSummary{
			Name:            p.Name(),
			InitialPriority: c.initialPriority,
			FinalPriority:   p.Priority(),
			Instructions:    p.Len(),
			State:           p.State(),
			Selections:      c.selections,
			IOWaits:         c.ioWaits,
			Preemptions:     c.preemptions,
			FinishedTick:    c.finishedTick,
		})
	}
	r.run.StateSummary = model.ComputeStateSummary(r.run.Processes)
	run := r.run
	return &run
}
