package model

import (
	"cmp"
	"fmt"
	"strings"
)

// IOInstruction is the reserved instruction token that represents an I/O wait.
const IOInstruction = "e/s"

// Instruction costs, in quantum units.
const (
	ComputeCost = 1.0
	IOCost      = 1.5
)

// DefaultQuantum is the budget a freshly created process starts with.
const DefaultQuantum = 5.0

// Priority bounds enforced by the priority policy.
const (
	MinPriority = 0
	MaxPriority = 10
)

// InstructionCost returns the quantum an instruction consumes.
func InstructionCost(token string) float64 {
	if token == IOInstruction {
		return IOCost
	}
	return ComputeCost
}

// Process is a simulated process: a named, prioritised sequence of instructions
// plus the execution state the scheduler mutates while running it.
//
// Processes are moved between scheduler containers by value. Copies share the
// instruction slice, which is treated as read-only once the process is admitted;
// use Clone before appending to a copy.
type Process struct {
	name         string
	priority     int
	instructions []string
	cursor       int // 1-based index of the next instruction
	quantum      float64
	state        ProcessState
	ioPending    bool
	ticket       uint64 // admission ticket, container membership only
}

// NewProcess creates a READY process with the default quantum and no instructions.
func NewProcess(name string, priority int, instructions ...string) Process {
	p := Process{
		name:     name,
		priority: priority,
		cursor:   1,
		quantum:  DefaultQuantum,
		state:    StateReady,
	}
	for _, ins := range instructions {
		p.AddInstruction(ins)
	}
	return p
}

func (p *Process) Name() string { return p.name }
func (p *Process) Priority() int { return p.priority }
func (p *Process) SetPriority(prio int) { p.priority = prio }
func (p *Process) State() ProcessState { return p.state }
func (p *Process) SetState(s ProcessState) { p.state = s }
func (p *Process) Cursor() int { return p.cursor }
func (p *Process) Quantum() float64 { return p.quantum }
func (p *Process) SetQuantum(q float64) { p.quantum = q }
func (p *Process) IOPending() bool { return p.ioPending }
func (p *Process) Len() int { return len(p.instructions) }
func (p *Process) Ticket() uint64 { return p.ticket }
func (p *Process) SetTicket(t uint64) { p.ticket = t }

// Instructions returns a copy of the instruction list.
func (p *Process) Instructions() []string {
	out := make([]string, len(p.instructions))
	copy(out, p.instructions)
	return out
}

// Remaining returns the instructions from the cursor to the end.
func (p *Process) Remaining() []string {
	if p.cursor > len(p.instructions) {
		return nil
	}
	start := max(p.cursor, 1) - 1
	out := make([]string, len(p.instructions)-start)
	copy(out, p.instructions[start:])
	return out
}

// AddInstruction appends an instruction token.
func (p *Process) AddInstruction(token string) {
	p.instructions = append(p.instructions, token)
}

// HasMoreInstructions reports whether the cursor still points at an instruction.
func (p *Process) HasMoreInstructions() bool {
	return p.cursor <= len(p.instructions)
}

// NextInstruction returns the token at the cursor.
func (p *Process) NextInstruction() (string, bool) {
	if p.cursor < 1 || !p.HasMoreInstructions() {
		return "", false
	}
	return p.instructions[p.cursor-1], true
}

// ExecuteNextInstruction advances the instruction state machine by one step.
// It returns true only when the process made visible progress: a compute
// instruction completed or a pending I/O finished.
func (p *Process) ExecuteNextInstruction() bool {
	if p.state == StateFinished {
		return false
	}
	if !p.ioPending && !p.HasMoreInstructions() {
		p.state = StateFinished
		return false
	}
	if p.ioPending {
		p.FinishIO()
		return true
	}
	if p.quantum <= 0 {
		p.state = StateRunningPreempted
		return false
	}

	token, _ := p.NextInstruction()
	if token == IOInstruction {
		if p.quantum >= IOCost {
			p.StartIO()
		} else {
			p.state = StateRunningPreempted
		}
		return false
	}

	// quantum never goes negative
	if p.quantum < ComputeCost {
		p.state = StateRunningPreempted
		return false
	}
	p.quantum -= ComputeCost
	p.cursor++
	if !p.HasMoreInstructions() {
		p.state = StateFinished
	}
	return true
}

// ResetExecution rewinds the process to its first instruction.
func (p *Process) ResetExecution() {
	p.cursor = 1
	p.quantum = 0
	p.ioPending = false
	p.state = StateReady
}

// StartIO enters the first phase of an I/O instruction.
func (p *Process) StartIO() {
	p.ioPending = true
	p.state = StateBlocked
	p.quantum -= IOCost
	p.advance()
}

// FinishIO completes the second phase of a pending I/O instruction.
// It does nothing when no I/O is pending.
func (p *Process) FinishIO() {
	if !p.ioPending {
		return
	}
	p.ioPending = false
	p.state = StateReady
	p.quantum = max(p.quantum-IOCost, 0)
	p.advance()
}

func (p *Process) advance() {
	if p.cursor <= len(p.instructions) {
		p.cursor++
	}
}

// Equal compares by priority and name only; execution progress is ignored.
func (p Process) Equal(other Process) bool {
	return p.priority == other.priority && p.name == other.name
}

// Less orders by priority, then name, then ticket.
func (p Process) Less(other Process) bool {
	return CompareProcesses(p, other) < 0
}

// ComparePriority orders by priority, then name. Processes that compare equal
// here are duplicates as far as the priority index is concerned.
func ComparePriority(a, b Process) int {
	if c := cmp.Compare(a.priority, b.priority); c != 0 {
		return c
	}
	return cmp.Compare(a.name, b.name)
}

// CompareProcesses is the total order used by the scheduler's FIFO queues:
// priority, then name, then admission ticket.
func CompareProcesses(a, b Process) int {
	if c := ComparePriority(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.ticket, b.ticket)
}

// Clone returns a deep copy of the process.
func (p Process) Clone() Process {
	c := p
	c.instructions = append([]string(nil), p.instructions...)
	return c
}

// ProcessView is a read-only snapshot of a process for presentation.
type ProcessView struct {
	Name         string       `json:"name"`
	Priority     int          `json:"priority"`
	State        ProcessState `json:"state"`
	Cursor       int          `json:"cursor"`
	Quantum      float64      `json:"quantum"`
	IOPending    bool         `json:"io_pending"`
	Instructions int          `json:"instructions"`
	Current      string       `json:"current,omitempty"`
}

// View returns a snapshot of the process.
func (p *Process) View() ProcessView {
	current, _ := p.NextInstruction()
	return ProcessView{
		Name:         p.name,
		Priority:     p.priority,
		State:        p.state,
		Cursor:       p.cursor,
		Quantum:      p.quantum,
		IOPending:    p.ioPending,
		Instructions: len(p.instructions),
		Current:      current,
	}
}

func (p Process) String() string {
	return fmt.Sprintf("Process[name: %s, priority: %d, state: %s, instruction index: %d, quantum: %g, IO pending: %t, instructions: {%s}]",
		p.name, p.priority, p.state, p.cursor, p.quantum, p.ioPending, strings.Join(p.instructions, ", "))
}
