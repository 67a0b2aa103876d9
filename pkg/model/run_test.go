package model

import (
	"testing"
	"time"
)

func TestComputeStateSummary(t *testing.T) {
	procs := []ProcessSummary{
		{State: StateFinished},
		{State: StateFinished},
		{State: StateReady},
		{State: StateBlocked},
		{State: StateRunningActive},
		{State: StateRunningPreempted},
	}

	got := ComputeStateSummary(procs)

	if got.Total != 6 {
		t.Errorf("Total = %d, want 6", got.Total)
	}
	if got.Finished != 2 {
		t.Errorf("Finished = %d, want 2", got.Finished)
	}
	if got.Ready != 1 {
		t.Errorf("Ready = %d, want 1", got.Ready)
	}
	if got.Blocked != 1 {
		t.Errorf("Blocked = %d, want 1", got.Blocked)
	}
	if got.Running != 2 {
		t.Errorf("Running = %d, want 2", got.Running)
	}
}

func TestComputeStateSummary_Empty(t *testing.T) {
	got := ComputeStateSummary(nil)
	if got != (StateSummary{}) {
		t.Errorf("got %+v, want zero summary", got)
	}
}

func TestRun_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := Run{CreatedAt: start}
	if d := r.Duration(); d != 0 {
		t.Errorf("open run Duration() = %v, want 0", d)
	}
	done := start.Add(3 * time.Second)
	r.CompletedAt = &done
	if d := r.Duration(); d != 3*time.Second {
		t.Errorf("Duration() = %v, want 3s", d)
	}
}

func TestStatus_Unfinished(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"empty", Status{}, false},
		{"ready", Status{Ready: 1}, true},
		{"blocked", Status{Blocked: 2}, true},
		{"only finished", Status{Finished: 3}, false},
		{"running current", Status{Current: &ProcessView{State: StateRunningActive}}, true},
		{"finished current", Status{Finished: 1, Current: &ProcessView{State: StateFinished}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Unfinished(); got != tt.want {
				t.Errorf("Unfinished() = %v, want %v", got, tt.want)
			}
		})
	}
}
