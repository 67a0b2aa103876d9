package scheduler

import "github.com/me/procsim/pkg/model"

// Observer receives presentation events from a running Core.
// Callbacks run on the scheduling goroutine and must not call back into the Core.
type Observer interface {
	// OnInstruction is called before each affordable instruction executes.
	OnInstruction(p model.ProcessView)
	// OnTransition is called after a process changes state.
	OnTransition(t model.Transition)
	// OnStatus is called at the end of every tick.
	OnStatus(s model.Status)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnInstruction(model.ProcessView) {}
func (NopObserver) OnTransition(model.Transition)   {}
func (NopObserver) OnStatus(model.Status)           {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnInstruction(p model.ProcessView) {
	for _, o := range m {
		o.OnInstruction(p)
	}
}

func (m MultiObserver) OnTransition(t model.Transition) {
	for _, o := range m {
		o.OnTransition(t)
	}
}

func (m MultiObserver) OnStatus(s model.Status) {
	for _, o := range m {
		o.OnStatus(s)
	}
}
