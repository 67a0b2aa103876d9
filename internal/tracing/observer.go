package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/me/procsim/internal/scheduler"
	"github.com/me/procsim/pkg/model"
)

// SpanObserver records scheduler events on a span.
type SpanObserver struct {
	span     *Span
	executed int
	ticks    int
}

var _ scheduler.Observer = (*SpanObserver)(nil)

// NewSpanObserver records onto sp.
func NewSpanObserver(sp *Span) *SpanObserver {
	return &SpanObserver{span: sp}
}

func (o *SpanObserver) OnInstruction(model.ProcessView) {
	o.executed++
}

func (o *SpanObserver) OnTransition(t model.Transition) {
	if o.span == nil {
		return
	}
	o.span.span.AddEvent("transition", trace.WithAttributes(
		attribute.Int("tick", t.Tick),
		attribute.String("process", t.Process),
		attribute.Int("priority", t.Priority),
		attribute.String("from", string(t.From)),
		attribute.String("to", string(t.To)),
	))
}

func (o *SpanObserver) OnStatus(s model.Status) {
	o.ticks = s.Tick
}

// Flush stores the instruction and tick totals as span attributes.
func (o *SpanObserver) Flush() {
	if o.span == nil {
		return
	}
	o.span.span.SetAttributes(
		attribute.Int("procsim.executed", o.executed),
		attribute.Int("procsim.ticks", o.ticks),
	)
}
