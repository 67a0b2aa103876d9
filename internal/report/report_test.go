package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/procsim/internal/clock"
	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/pkg/model"
)

func runWorkload(t *testing.T, kind model.PolicyKind, procs ...model.Process) (*model.Run, *bytes.Buffer) {
	t.Helper()
	policy, err := scheduler.NewPolicy(kind, scheduler.DefaultConfig())
	require.NoError(t, err)

	fake := clock.NewFake(time.Unix(0, 0))
	rec := NewRecorder(kind, "test.txt", fake)
	var out bytes.Buffer
	core := scheduler.NewCore(policy, scheduler.DefaultConfig(), nil,
		scheduler.WithClock(fake),
		scheduler.WithObserver(scheduler.MultiObserver{rec, NewConsole(&out, true)}))

	rec.Admitted(procs)
	for _, p := range procs {
		require.NoError(t, core.AddProcess(p))
	}
	runErr := core.Run(context.Background())
	require.NoError(t, runErr)
	return rec.Finish(core.Finished(), runErr), &out
}

func TestRecorder_RoundRobinRun(t *testing.T) {
	run, _ := runWorkload(t, model.PolicyRoundRobin,
		model.NewProcess("A", 2, "op", "op", "op", "op", "op", "op"),
		model.NewProcess("B", 1, "op", model.IOInstruction, "op"),
	)

	assert.True(t, strings.HasPrefix(run.ID, "run_"))
	assert.Equal(t, model.PolicyRoundRobin, run.Policy)
	assert.Equal(t, "test.txt", run.Source)
	assert.Equal(t, 2, run.ProcessCount)
	assert.NotZero(t, run.Ticks)
	assert.NotNil(t, run.CompletedAt)
	assert.Empty(t, run.Error)
	assert.Equal(t, model.StateSummary{Total: 2, Finished: 2}, run.StateSummary)

	byName := map[string]model.ProcessSummary{}
	for _, p := range run.Processes {
		byName[p.Name] = p
	}
	a := byName["A"]
	assert.Equal(t, 2, a.Selections)
	assert.Equal(t, 1, a.Preemptions)
	assert.Equal(t, 6, a.Instructions)
	assert.Equal(t, model.StateFinished, a.State)
	assert.NotZero(t, a.FinishedTick)

	b := byName["B"]
	assert.Equal(t, 1, b.IOWaits)
	assert.Equal(t, 1, b.InitialPriority)
}

func TestRecorder_PriorityRecordsFinalPriority(t *testing.T) {
	run, _ := runWorkload(t, model.PolicyPriority, model.NewProcess("cpu", 1, "op", "op", "op"))
	require.Len(t, run.Processes, 1)
	assert.Equal(t, 1, run.Processes[0].InitialPriority)
	assert.Equal(t, 4, run.Processes[0].FinalPriority)
	assert.Equal(t, 3, run.Executed)
}

func TestRecorder_UsesInjectedClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := clock.NewFake(start)
	rec := NewRecorder(model.PolicyPriority, "x", fake)
	fake.Advance(90 * time.Second)
	run := rec.Finish(nil, nil)

	assert.Equal(t, start, run.CreatedAt)
	require.NotNil(t, run.CompletedAt)
	assert.Equal(t, start.Add(90*time.Second), *run.CompletedAt)
}

func TestRecorder_FinishWithError(t *testing.T) {
	rec := NewRecorder(model.PolicyRoundRobin, "x", nil)
	run := rec.Finish(nil, errors.New("tick limit reached"))
	assert.Equal(t, "tick limit reached", run.Error)
	assert.Empty(t, run.Processes)
	assert.Equal(t, rec.ID(), run.ID)
}

func TestConsole_Output(t *testing.T) {
	_, out := runWorkload(t, model.PolicyRoundRobin, model.NewProcess("P1", 5, "i1", model.IOInstruction))
	s := out.String()
	assert.Contains(t, s, "Process: P1, priority: 5, state: RUNNING_ACTIVE, remaining quantum: 5.\n")
	assert.Contains(t, s, "Current instruction: i1\nInstruction index: 1\n")
	assert.Contains(t, s, "READY -> RUNNING_ACTIVE")
	assert.Contains(t, s, "Finished processes: 1\n")
}

func TestConsole_HidesLargeQuantum(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, false)
	c.OnInstruction(model.ProcessView{Name: "P", Priority: 3, State: model.StateRunningActive, Quantum: 1024, Current: "x", Cursor: 1})
	c.OnTransition(model.Transition{Process: "P"})
	assert.NotContains(t, out.String(), "quantum")
	assert.NotContains(t, out.String(), "->")
}

func TestPrintRun(t *testing.T) {
	run, _ := runWorkload(t, model.PolicyRoundRobin, model.NewProcess("A", 2, "op"))
	var out bytes.Buffer
	PrintRun(&out, run)
	s := out.String()
	assert.Contains(t, s, run.ID)
	assert.Contains(t, s, "round-robin")
	assert.Contains(t, s, "PROCESS")
	assert.Contains(t, s, "2 -> 2")
	assert.Contains(t, s, "tick ")
}

func TestPrintTransitions(t *testing.T) {
	run, _ := runWorkload(t, model.PolicyRoundRobin, model.NewProcess("A", 2, "op"))
	require.NotEmpty(t, run.Transitions)

	var out bytes.Buffer
	PrintTransitions(&out, run.Transitions)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, len(run.Transitions)+1)
	assert.Contains(t, lines[0], "TICK")
	assert.Contains(t, out.String(), "RUNNING_ACTIVE")
}
