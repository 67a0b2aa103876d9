package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/pkg/model"
)

// Console prints a human-readable trace of a simulation.
type Console struct {
	w           io.Writer
	transitions bool
}

var _ scheduler.Observer = (*Console)(nil)

// NewConsole writes to w. With transitions set, every state change is printed
// as well as each executed instruction and each status report.
func NewConsole(w io.Writer, transitions bool) *Console {
	return &Console{w: w, transitions: transitions}
}

func (c *Console) OnInstruction(p model.ProcessView) {
	fmt.Fprintf(c.w, "Process: %s, priority: %d, state: %s", p.Name, p.Priority, p.State)
	// priority budgets are too large to be informative
	if p.Quantum <= model.DefaultQuantum {
		fmt.Fprintf(c.w, ", remaining quantum: %g", p.Quantum)
	}
	fmt.Fprintf(c.w, ".\nCurrent instruction: %s\nInstruction index: %d\n", p.Current, p.Cursor)
}

func (c *Console) OnTransition(t model.Transition) {
	if !c.transitions {
		return
	}
	fmt.Fprintf(c.w, "[tick %d] %s (priority %d): %s -> %s\n", t.Tick, t.Process, t.Priority, t.From, t.To)
}

func (c *Console) OnStatus(s model.Status) {
	fmt.Fprintf(c.w, "Ready processes: %d\nBlocked processes: %d\nFinished processes: %d\n\n",
		s.Ready, s.Blocked, s.Finished)
}

// PrintRun writes a summary of a recorded run.
func PrintRun(w io.Writer, run *model.Run) {
	fmt.Fprintf(w, "Run:       %s\n", run.ID)
	fmt.Fprintf(w, "Policy:    %s\n", run.Policy)
	fmt.Fprintf(w, "Source:    %s\n", run.Source)
	fmt.Fprintf(w, "Ticks:     %s\n", humanize.Comma(int64(run.Ticks)))
	fmt.Fprintf(w, "Executed:  %s instructions\n", humanize.Comma(int64(run.Executed)))
	if run.CompletedAt != nil {
		fmt.Fprintf(w, "Completed: %s (took %s)\n", humanize.Time(*run.CompletedAt), run.Duration().Round(time.Millisecond))
	}
	if run.Error != "" {
		fmt.Fprintf(w, "Error:     %s\n", run.Error)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROCESS\tPRIORITY\tINSTR\tSTATE\tSELECTED\tI/O\tPREEMPTED\tFINISHED AT")
	for _, p := range run.Processes {
		fmt.Fprintf(tw, "%s\t%d -> %d\t%d\t%s\t%d\t%d\t%d\t%s\n",
			p.Name, p.InitialPriority, p.FinalPriority, p.Instructions, p.State,
			p.Selections, p.IOWaits, p.Preemptions, finishedAt(p))
	}
	tw.Flush()
}

func finishedAt(p model.ProcessSummary) string {
	if p.State != model.StateFinished {
		return "-"
	}
	return fmt.Sprintf("tick %d", p.FinishedTick)
}

// PrintTransitions writes a run's state timeline, one line per change.
func PrintTransitions(w io.Writer, transitions []model.Transition) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tPROCESS\tPRIORITY\tFROM\tTO")
	for _, t := range transitions {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", t.Tick, t.Process, t.Priority, t.From, t.To)
	}
	tw.Flush()
}
