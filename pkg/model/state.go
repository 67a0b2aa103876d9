package model

// ProcessState represents the lifecycle state of a simulated Process.
type ProcessState string

const (
	StateReady            ProcessState = "READY"
	StateRunningActive    ProcessState = "RUNNING_ACTIVE"
	StateRunningPreempted ProcessState = "RUNNING_PREEMPTED"
	StateBlocked          ProcessState = "BLOCKED"
	StateFinished         ProcessState = "FINISHED"
)

// String returns the string representation of the process state.
func (s ProcessState) String() string {
	return string(s)
}

// IsTerminal returns true if the process can no longer change state.
func (s ProcessState) IsTerminal() bool {
	return s == StateFinished
}

// IsRunning returns true for both running sub-states.
func (s ProcessState) IsRunning() bool {
	switch s {
	case StateRunningActive, StateRunningPreempted:
		return true
	}
	return false
}

// ValidProcessTransitions defines the allowed state transitions for Processes.
var ValidProcessTransitions = map[ProcessState][]ProcessState{
	StateReady:            {StateRunningActive},
	StateRunningActive:    {StateRunningPreempted, StateBlocked, StateFinished},
	StateRunningPreempted: {StateReady},
	StateBlocked:          {StateReady},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s ProcessState) CanTransitionTo(next ProcessState) bool {
	for _, allowed := range ValidProcessTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PolicyKind identifies which scheduling policy drives a simulation.
type PolicyKind string

const (
	PolicyRoundRobin PolicyKind = "round-robin"
	PolicyPriority   PolicyKind = "priority"
)

// String returns the string representation of the policy kind.
func (k PolicyKind) String() string {
	return string(k)
}

// ParsePolicyKind accepts the canonical names plus a few short aliases.
func ParsePolicyKind(s string) (PolicyKind, bool) {
	switch s {
	case "round-robin", "roundrobin", "rr", "RR":
		return PolicyRoundRobin, true
	case "priority", "prio", "PRIORITY":
		return PolicyPriority, true
	}
	return "", false
}
