package sim

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/procsim/internal/clock"
	"github.com/me/procsim/internal/config"
	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/pkg/model"
)

func newRunner(cfg config.SimConfig) *Runner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(cfg, clock.NewFake(time.Unix(0, 0)), logger)
}

type countingObserver struct {
	scheduler.NopObserver
	statuses int
}

func (c *countingObserver) OnStatus(model.Status) { c.statuses++ }

func TestRunner_Completes(t *testing.T) {
	obs := &countingObserver{}
	run, err := newRunner(config.DefaultSimConfig()).Run(context.Background(), "inline",
		[]model.Process{
			model.NewProcess("A", 1, "op", model.IOInstruction, "op"),
			model.NewProcess("B", 3, "op", "op"),
		}, obs)
	require.NoError(t, err)

	assert.Equal(t, model.PolicyRoundRobin, run.Policy)
	assert.Equal(t, 2, run.ProcessCount)
	assert.Equal(t, 2, run.StateSummary.Finished)
	assert.Equal(t, run.Ticks, obs.statuses)
	assert.Equal(t, time.Unix(0, 0).UTC(), run.CreatedAt, "timestamps follow the runner clock")
}

func TestRunner_PriorityPolicy(t *testing.T) {
	cfg := config.DefaultSimConfig()
	cfg.Policy = "priority"
	run, err := newRunner(cfg).Run(context.Background(), "inline",
		[]model.Process{model.NewProcess("A", 0, "op")})
	require.NoError(t, err)
	assert.Equal(t, model.PolicyPriority, run.Policy)
	assert.Equal(t, 1, run.Processes[0].FinalPriority)
}

func TestRunner_TickLimitReturnsPartialRun(t *testing.T) {
	cfg := config.DefaultSimConfig()
	cfg.MaxTicks = 2
	long := model.NewProcess("long", 1)
	for range 40 {
		long.AddInstruction("op")
	}
	procs := []model.Process{long}

	run, err := newRunner(cfg).Run(context.Background(), "inline", procs)
	require.ErrorIs(t, err, scheduler.ErrTickLimit)
	require.NotNil(t, run)
	assert.Equal(t, "tick limit reached", run.Error)
	require.Len(t, run.Processes, 1)
	assert.Equal(t, model.StateReady, run.Processes[0].State)
}

func TestRunner_RejectsBadInput(t *testing.T) {
	_, err := newRunner(config.DefaultSimConfig()).Run(context.Background(), "inline",
		[]model.Process{model.NewProcess("", 1)})
	assert.ErrorIs(t, err, model.ErrInvalidProcess)

	cfg := config.DefaultSimConfig()
	cfg.Policy = "lottery"
	_, err = newRunner(cfg).Run(context.Background(), "inline", nil)
	assert.ErrorContains(t, err, "unknown policy")
}

func TestSchedulerConfig(t *testing.T) {
	cfg := config.DefaultSimConfig()
	cfg.MaxTicks = 9
	got := SchedulerConfig(cfg)
	assert.Equal(t, scheduler.Config{
		QuantumSlice:    5,
		PriorityQuantum: 1024,
		IOWait:          15 * time.Second,
		MaxTicks:        9,
	}, got)
}
