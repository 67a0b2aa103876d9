package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/procsim/internal/loader"
	"github.com/me/procsim/internal/report"
	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/internal/sim"
	"github.com/me/procsim/internal/tracing"
	"github.com/me/procsim/pkg/model"
)

func newRunCmd() *cobra.Command {
	var (
		policy      string
		format      string
		quantum     float64
		pace        time.Duration
		ioWait      time.Duration
		maxTicks    int
		quiet       bool
		transitions bool
		traceFile   string
		save        bool
	)

	cmd := &cobra.Command{
		Use:   "run <workload>",
		Short: "Simulate a workload",
		Long: "Load a workload file and run it to completion under the selected policy,\n" +
			"printing each executed instruction and a status report after every cycle.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			simCfg := settings.Simulation
			flags := cmd.Flags()
			if flags.Changed("policy") {
				simCfg.Policy = policy
			}
			if flags.Changed("quantum") {
				simCfg.QuantumSlice = quantum
			}
			if flags.Changed("pace") {
				simCfg.PaceUnit = pace
			}
			if flags.Changed("io-wait") {
				simCfg.IOWait = ioWait
			}
			if flags.Changed("max-ticks") {
				simCfg.MaxTicks = maxTicks
			}
			if err := simCfg.Validate(); err != nil {
				return err
			}

			procs, err := loadWorkload(path, format)
			if err != nil {
				return err
			}
			if len(procs) == 0 {
				return fmt.Errorf("%s defines no processes", path)
			}

			var observers []scheduler.Observer
			if !quiet {
				observers = append(observers, report.NewConsole(out, transitions))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var (
				span    *tracing.Span
				spanObs *tracing.SpanObserver
			)
			if traceFile != "" {
				f, err := os.Create(traceFile)
				if err != nil {
					return fmt.Errorf("create trace file: %w", err)
				}
				defer f.Close()
				shutdown, err := tracing.Init("procsim", Version, f)
				if err != nil {
					return fmt.Errorf("init tracing: %w", err)
				}
				defer shutdown(context.Background())

				ctx, span = tracing.StartSpan(ctx, "simulation")
				span.WithAttributes(map[string]string{"policy": simCfg.Policy, "workload": path})
				spanObs = tracing.NewSpanObserver(span)
				observers = append(observers, spanObs)
			}

			run, runErr := sim.NewRunner(simCfg, nil, logger).Run(ctx, filepath.Base(path), procs, observers...)
			if spanObs != nil {
				spanObs.Flush()
				tracing.EndSpan(span, runErr)
			}
			if run == nil {
				return runErr
			}

			if !quiet {
				fmt.Fprintln(out)
			}
			report.PrintRun(out, run)

			if save {
				st, err := openStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.CreateRun(context.WithoutCancel(ctx), run); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				fmt.Fprintf(out, "\nSaved run %s\n", run.ID)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&policy, "policy", string(model.PolicyRoundRobin), "Scheduling policy (round-robin, priority)")
	cmd.Flags().StringVar(&format, "format", "", "Workload format (text, yaml); default from the file extension")
	cmd.Flags().Float64Var(&quantum, "quantum", 5, "Round-robin quantum slice")
	cmd.Flags().DurationVar(&pace, "pace", 0, "Wall time per quantum unit, e.g. 1s (0 runs at full speed)")
	cmd.Flags().DurationVar(&ioWait, "io-wait", 15*time.Second, "How long a blocked process waits before release")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "Stop after this many scheduling cycles (0 means no limit)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the final report")
	cmd.Flags().BoolVar(&transitions, "transitions", false, "Print every process state change")
	cmd.Flags().StringVar(&traceFile, "trace-file", "", "Write OpenTelemetry spans for the run to this file")
	cmd.Flags().BoolVar(&save, "save", false, "Archive the run in the database")

	return cmd
}

// loadWorkload parses path, using format when set and the file extension otherwise.
func loadWorkload(path, format string) ([]model.Process, error) {
	parser := loader.New(logger)
	if format == "" {
		return parser.LoadFile(path)
	}
	f, err := loader.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	procs, err := parser.Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return procs, nil
}
