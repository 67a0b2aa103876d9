package model

import "testing"

func TestProcessState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    ProcessState
		terminal bool
	}{
		{StateReady, false},
		{StateRunningActive, false},
		{StateRunningPreempted, false},
		{StateBlocked, false},
		{StateFinished, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.terminal {
			t.Errorf("ProcessState(%q).IsTerminal() = %v, want %v", tt.state, got, tt.terminal)
		}
	}
}

func TestProcessState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from  ProcessState
		to    ProcessState
		valid bool
	}{
		// Valid transitions
		{StateReady, StateRunningActive, true},
		{StateRunningActive, StateRunningPreempted, true},
		{StateRunningActive, StateBlocked, true},
		{StateRunningActive, StateFinished, true},
		{StateRunningPreempted, StateReady, true},
		{StateBlocked, StateReady, true},

		// Invalid transitions
		{StateReady, StateFinished, false},
		{StateReady, StateBlocked, false},
		{StateBlocked, StateRunningActive, false},
		{StateFinished, StateReady, false},
		{StateFinished, StateRunningActive, false},
		{StateRunningPreempted, StateRunningActive, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Errorf("ProcessState(%q).CanTransitionTo(%q) = %v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestProcessState_IsRunning(t *testing.T) {
	if !StateRunningActive.IsRunning() || !StateRunningPreempted.IsRunning() {
		t.Error("running sub-states should report IsRunning")
	}
	if StateReady.IsRunning() || StateBlocked.IsRunning() || StateFinished.IsRunning() {
		t.Error("non-running states should not report IsRunning")
	}
}

func TestParsePolicyKind(t *testing.T) {
	tests := []struct {
		input string
		want  PolicyKind
		ok    bool
	}{
		{"round-robin", PolicyRoundRobin, true},
		{"rr", PolicyRoundRobin, true},
		{"priority", PolicyPriority, true},
		{"prio", PolicyPriority, true},
		{"fifo", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePolicyKind(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePolicyKind(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
