package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/procsim/internal/clock"
	"github.com/me/procsim/internal/iotimer"
	"github.com/me/procsim/internal/queue"
	"github.com/me/procsim/pkg/model"
)

// ErrTickLimit is returned by Run when Config.MaxTicks is reached with work left.
var ErrTickLimit = errors.New("tick limit reached")

// Config holds scheduler configuration.
type Config struct {
	QuantumSlice    float64       // round-robin slice
	PriorityQuantum float64       // budget of a priority-selected process
	IOWait          time.Duration // how long the oldest blocked process waits
	MaxTicks        int           // 0 means unlimited
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		QuantumSlice:    DefaultQuantumSlice,
		PriorityQuantum: DefaultPriorityQuantum,
		IOWait:          iotimer.DefaultRequisite,
	}
}

// Option customises a Core.
type Option func(*Core)

// WithClock sets the clock measuring I/O waits.
func WithClock(c clock.Clock) Option {
	return func(core *Core) { core.clock = c }
}

// WithPacer sets the pacer applied after each executed instruction.
func WithPacer(p Pacer) Option {
	return func(core *Core) { core.pacer = p }
}

// WithObserver sets the presentation sink.
func WithObserver(o Observer) Option {
	return func(core *Core) { core.observer = o }
}

// Core implements the Scheduler interface. It owns a detached copy of the
// running process plus ready, blocked and finished containers, and moves
// processes between them by value.
//
// A Core is not safe for concurrent use.
type Core struct {
	policy   Policy
	config   Config
	ready    readySet
	blocked  *queue.Queue[model.Process]
	finished *queue.Queue[model.Process]
	current  *model.Process
	selected model.Process // ready entry current was copied from
	timer    *iotimer.Timer
	clock    clock.Clock
	pacer    Pacer
	observer Observer
	logger   *slog.Logger
	tickets  uint64
	ticks    int
}

var _ Scheduler = (*Core)(nil)

// NewCore creates a scheduler driven by policy.
func NewCore(policy Policy, cfg Config, logger *slog.Logger, opts ...Option) *Core {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Core{
		policy:   policy,
		config:   cfg,
		ready:    policy.newReadySet(),
		blocked:  queue.New(model.CompareProcesses),
		finished: queue.New(model.CompareProcesses),
		clock:    clock.System{},
		pacer:    NopPacer{},
		observer: NopObserver{},
		logger:   logger.With("component", "scheduler", "policy", policy.Kind()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.timer = iotimer.New(c.clock, c.config.IOWait)
	return c
}

// Policy returns the policy driving the core.
func (c *Core) Policy() Policy { return c.policy }

// Ticks returns the number of completed scheduling iterations.
func (c *Core) Ticks() int { return c.ticks }

// AddProcess admits p into the ready structure. The caller keeps ownership of
// p; the core stores a deep copy.
func (c *Core) AddProcess(p model.Process) error {
	if p.Name() == "" {
		return fmt.Errorf("admit process: %w: empty name", model.ErrInvalidProcess)
	}
	p = p.Clone()
	declared := p.Priority()
	c.policy.admit(&p)
	c.insertReady(&p)
	c.logger.Debug("process admitted",
		"process", p.Name(), "declared_priority", declared, "priority", p.Priority(), "instructions", p.Len())
	return nil
}

// Run loops { CheckBlockedProcesses, ExecuteQuantum, Schedule, report } until
// no unfinished work remains.
func (c *Core) Run(ctx context.Context) error {
	c.logger.Info("simulation started", "ready", c.ready.Len())
	for c.HasUnfinishedProcesses() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.config.MaxTicks > 0 && c.ticks >= c.config.MaxTicks {
			c.logger.Warn("tick limit reached", "ticks", c.ticks, "ready", c.ready.Len(), "blocked", c.blocked.Size())
			return ErrTickLimit
		}
		if err := c.Tick(ctx); err != nil {
			return err
		}
	}
	c.logger.Info("simulation finished", "ticks", c.ticks, "finished", c.finished.Size())
	return nil
}

// Tick runs a single scheduling iteration.
func (c *Core) Tick(ctx context.Context) error {
	c.ticks++
	c.CheckBlockedProcesses()
	if err := c.ExecuteQuantum(ctx); err != nil {
		return fmt.Errorf("tick %d (execute): %w", c.ticks, err)
	}
	c.Schedule()
	c.observer.OnStatus(c.Status())
	return nil
}

// Schedule lets the policy pick the next process and marks it RUNNING_ACTIVE.
func (c *Core) Schedule() {
	c.selectNext()
	if c.current == nil {
		return
	}
	from := c.current.State()
	if !from.CanTransitionTo(model.StateRunningActive) {
		c.logger.Warn("unexpected selection", "error",
			&model.InvalidTransitionError{Process: c.current.Name(), From: from, To: model.StateRunningActive})
	}
	c.current.SetState(model.StateRunningActive)
	c.emit(*c.current, from, model.StateRunningActive)
}

// selectNext drops the stale ready entry of the previous current process, then
// adopts the policy's next ready process. With nothing ready, the oldest
// blocked process is promoted directly, bypassing the I/O timer.
func (c *Core) selectNext() {
	if c.current != nil {
		c.ready.Remove(c.selected)
		c.current = nil
	}
	if c.ready.Len() == 0 {
		oldest, ok := c.blocked.Head()
		if !ok {
			return
		}
		c.logger.Debug("ready structure empty, promoting blocked process", "process", oldest.Name())
		c.MoveToReady(&oldest)
		c.adopt(oldest)
		return
	}
	next, _ := c.ready.Next()
	c.adopt(next)
}

func (c *Core) adopt(p model.Process) {
	c.selected = p
	cur := p
	cur.SetQuantum(c.policy.Quantum())
	c.current = &cur
}

// ExecuteQuantum runs the current process while it can afford its next
// instruction, then routes it by its resulting state. It is a no-op unless a
// process is RUNNING_ACTIVE.
func (c *Core) ExecuteQuantum(ctx context.Context) error {
	p := c.current
	if p == nil || p.State() != model.StateRunningActive {
		return nil
	}
	before := p.State()
	for p.State() != model.StateBlocked {
		token, ok := p.NextInstruction()
		if !ok {
			p.ExecuteNextInstruction()
			break
		}
		cost := model.InstructionCost(token)
		if p.Quantum() < cost {
			p.ExecuteNextInstruction()
			break
		}
		c.observer.OnInstruction(p.View())
		p.ExecuteNextInstruction()
		if err := c.pacer.Pace(ctx, cost); err != nil {
			return err
		}
		if p.State() == model.StateFinished {
			break
		}
	}

	after := p.State()
	c.emit(*p, before, after)
	switch after {
	case model.StateFinished:
		c.MoveToFinished(p)
	case model.StateBlocked:
		c.MoveToBlocked(p)
	case model.StateRunningPreempted:
		c.MoveToReady(p)
	}

	c.CheckBlockedProcesses()
	return nil
}

// CheckBlockedProcesses starts the I/O timer when blocked processes exist and,
// once it fires, releases the oldest blocked process and replaces the timer.
// It reports whether a process was released.
func (c *Core) CheckBlockedProcesses() bool {
	if c.blocked.Empty() {
		return false
	}
	if !c.timer.Started() {
		c.timer.Start()
	}
	if !c.timer.Ready() {
		return false
	}
	oldest, _ := c.blocked.Head()
	c.logger.Debug("I/O wait elapsed", "process", oldest.Name(), "waited", c.timer.Elapsed())
	c.MoveToReady(&oldest)
	c.timer = iotimer.New(c.clock, c.config.IOWait)
	return true
}

// MoveToReady removes p from the container its state implies, completes a
// pending I/O if p was blocked, and inserts it into the ready structure.
func (c *Core) MoveToReady(p *model.Process) {
	from := p.State()
	c.RemoveProcess(*p)
	if from == model.StateBlocked {
		p.FinishIO()
	}
	p.SetState(model.StateReady)
	c.policy.prepareReady(p)
	c.insertReady(p)
	c.emit(*p, from, model.StateReady)
}

// MoveToBlocked relocates p to the tail of the blocked queue.
func (c *Core) MoveToBlocked(p *model.Process) {
	from := p.State()
	c.RemoveProcess(*p)
	p.SetState(model.StateBlocked)
	c.blocked.InsertTail(*p)
	c.emit(*p, from, model.StateBlocked)
}

// MoveToFinished relocates p to the tail of the finished queue.
func (c *Core) MoveToFinished(p *model.Process) {
	from := p.State()
	c.RemoveProcess(*p)
	p.SetState(model.StateFinished)
	c.finished.InsertTail(*p)
	c.emit(*p, from, model.StateFinished)
	c.logger.Debug("process finished", "process", p.Name(), "tick", c.ticks)
}

// RemoveProcess deletes p from the container matching its declared state.
// Running processes live in no container, so nothing happens for them.
func (c *Core) RemoveProcess(p model.Process) bool {
	if p.State().IsRunning() {
		return false
	}
	switch p.State() {
	case model.StateReady:
		return c.ready.Remove(p)
	case model.StateBlocked:
		return c.blocked.DeleteByValue(p)
	case model.StateFinished:
		return c.finished.DeleteByValue(p)
	}
	return false
}

// HasUnfinishedProcesses reports whether anything is ready or blocked.
func (c *Core) HasUnfinishedProcesses() bool {
	return c.ready.Len() > 0 || !c.blocked.Empty()
}

// Current returns a copy of the running process.
func (c *Core) Current() (model.Process, bool) {
	if c.current == nil {
		return model.Process{}, false
	}
	return *c.current, true
}

// Ready lists the ready structure in selection order.
func (c *Core) Ready() []model.Process { return c.ready.Snapshot() }

// Blocked lists blocked processes, oldest first.
func (c *Core) Blocked() []model.Process { return c.blocked.Values() }

// Finished lists finished processes in completion order.
func (c *Core) Finished() []model.Process { return c.finished.Values() }

// Status reports container sizes and the current process.
func (c *Core) Status() model.Status {
	s := model.Status{
		Policy:   c.policy.Kind(),
		Tick:     c.ticks,
		Ready:    c.ready.Len(),
		Blocked:  c.blocked.Size(),
		Finished: c.finished.Size(),
	}
	if c.current != nil {
		v := c.current.View()
		s.Current = &v
	}
	return s
}

// insertReady stamps p with a fresh ticket so that every ready entry is
// distinct, even for processes sharing name and priority.
func (c *Core) insertReady(p *model.Process) {
	c.tickets++
	p.SetTicket(c.tickets)
	c.ready.Insert(*p)
}

func (c *Core) emit(p model.Process, from, to model.ProcessState) {
	if from == to {
		return
	}
	c.logger.Debug("state transition", "process", p.Name(), "from", from, "to", to, "tick", c.ticks)
	c.observer.OnTransition(model.Transition{
		Tick:     c.ticks,
		Process:  p.Name(),
		Priority: p.Priority(),
		From:     from,
		To:       to,
	})
}
