package scheduler

import (
	"testing"

	"github.com/me/procsim/pkg/model"
)

func TestCalculateInitialPriority(t *testing.T) {
	tests := []struct {
		name         string
		priority     int
		instructions []string
		want         int
	}{
		{"compute raises", 3, []string{"a", "b"}, 5},
		{"io lowers", 3, []string{model.IOInstruction, model.IOInstruction}, 1},
		{"floor at zero", 1, []string{model.IOInstruction, model.IOInstruction, "a"}, 1},
		{"ceiling at ten", 9, []string{"a", "a", "a", model.IOInstruction}, 9},
		{"declared above range", 42, nil, 10},
		{"declared below range", -7, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewProcess("p", tt.priority, tt.instructions...)
			CalculateInitialPriority(&p)
			if got := p.Priority(); got != tt.want {
				t.Errorf("priority = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdjustProcessPriority_RemainingOnly(t *testing.T) {
	p := model.NewProcess("p", 5, model.IOInstruction, model.IOInstruction, "a", "b", "c")
	p.SetQuantum(100)
	p.ExecuteNextInstruction() // start I/O
	p.ExecuteNextInstruction() // finish I/O; cursor now at "a"

	AdjustProcessPriority(&p)
	if got := p.Priority(); got != 8 {
		t.Errorf("priority = %d, want 8", got)
	}
}

func TestNewPolicy(t *testing.T) {
	cfg := DefaultConfig()
	rr, err := NewPolicy(model.PolicyRoundRobin, cfg)
	if err != nil {
		t.Fatalf("NewPolicy(rr): %v", err)
	}
	if rr.Quantum() != DefaultQuantumSlice {
		t.Errorf("rr quantum = %v, want %v", rr.Quantum(), DefaultQuantumSlice)
	}
	pp, err := NewPolicy(model.PolicyPriority, cfg)
	if err != nil {
		t.Fatalf("NewPolicy(priority): %v", err)
	}
	if pp.Quantum() != DefaultPriorityQuantum {
		t.Errorf("priority quantum = %v, want %v", pp.Quantum(), DefaultPriorityQuantum)
	}
	if _, err := NewPolicy("lottery", cfg); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, want int }{{-3, 0}, {0, 0}, {4, 4}, {10, 10}, {11, 10}}
	for _, tt := range tests {
		if got := clamp(tt.v, model.MinPriority, model.MaxPriority); got != tt.want {
			t.Errorf("clamp(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
	if got := clamp[uint8](200, 1, 100); got != 100 {
		t.Errorf("clamp[uint8](200) = %d, want 100", got)
	}
}
