// Package sim wires configuration, the scheduler and the run recorder into a
// single call shared by the CLI and the server.
package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/me/procsim/internal/clock"
	"github.com/me/procsim/internal/config"
	"github.com/me/procsim/internal/report"
	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/pkg/model"
)

// Runner executes simulations from a SimConfig.
type Runner struct {
	config config.SimConfig
	clock  clock.Clock
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil clock means the system clock.
func NewRunner(cfg config.SimConfig, c clock.Clock, logger *slog.Logger) *Runner {
	if c == nil {
		c = clock.System{}
	}
	return &Runner{config: cfg, clock: c, logger: logger.With("component", "sim")}
}

// SchedulerConfig maps the simulation settings onto the scheduler's.
func SchedulerConfig(cfg config.SimConfig) scheduler.Config {
	return scheduler.Config{
		QuantumSlice:    cfg.QuantumSlice,
		PriorityQuantum: cfg.PriorityQuantum,
		IOWait:          cfg.IOWait,
		MaxTicks:        cfg.MaxTicks,
	}
}

// Run admits procs, runs them to completion and returns the recorded run.
// The returned run is non-nil whenever the simulation started, even if it
// stopped early with an error.
func (r *Runner) Run(ctx context.Context, source string, procs []model.Process, observers ...scheduler.Observer) (*model.Run, error) {
	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	kind, _ := r.config.PolicyKind()
	schedCfg := SchedulerConfig(r.config)
	policy, err := scheduler.NewPolicy(kind, schedCfg)
	if err != nil {
		return nil, err
	}

	rec := report.NewRecorder(kind, source, r.clock)
	obs := append(scheduler.MultiObserver{rec}, observers...)

	var pacer scheduler.Pacer = scheduler.NopPacer{}
	if r.config.PaceUnit > 0 {
		pacer = scheduler.SleepPacer{Unit: r.config.PaceUnit}
	}

	core := scheduler.NewCore(policy, schedCfg, r.logger,
		scheduler.WithClock(r.clock),
		scheduler.WithPacer(pacer),
		scheduler.WithObserver(obs))

	for _, p := range procs {
		if err := core.AddProcess(p); err != nil {
			return nil, fmt.Errorf("admit workload %s: %w", source, err)
		}
	}
	rec.Admitted(procs)

	r.logger.Info("run started", "run_id", rec.ID(), "policy", kind, "source", source, "processes", len(procs))
	runErr := core.Run(ctx)

	final := core.Finished()
	if runErr != nil {
		final = append(final, core.Ready()...)
		final = append(final, core.Blocked()...)
	}
	run := rec.Finish(final, runErr)
	if runErr != nil {
		r.logger.Warn("run stopped early", "run_id", run.ID, "ticks", run.Ticks, "error", runErr)
		return run, fmt.Errorf("run %s: %w", run.ID, runErr)
	}
	r.logger.Info("run completed", "run_id", run.ID, "ticks", run.Ticks, "duration", run.Duration())
	return run, nil
}
