package model

// Status is a point-in-time view of a scheduler for presentation.
type Status struct {
	Policy   PolicyKind   `json:"policy"`
	Tick     int          `json:"tick"`
	Ready    int          `json:"ready"`
	Blocked  int          `json:"blocked"`
	Finished int          `json:"finished"`
	Current  *ProcessView `json:"current,omitempty"`
}

// Unfinished reports whether any admitted process has not finished yet.
func (s Status) Unfinished() bool {
	return s.Ready > 0 || s.Blocked > 0 || (s.Current != nil && !s.Current.State.IsTerminal())
}
