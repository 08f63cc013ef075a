package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/stamp/internal/core/ports"
)

// errStepFailed stands in for a failed span that carries no description.
var errStepFailed = errors.New("step failed")

// StepProcessor is an sdktrace.SpanProcessor that turns every pipeline span
// into a step on a ports.StepReporter. Span IDs double as step IDs.
type StepProcessor struct {
	steps ports.StepReporter
}

var _ sdktrace.SpanProcessor = (*StepProcessor)(nil)

// NewStepProcessor returns a StepProcessor for steps. With nil steps every
// span is ignored.
func NewStepProcessor(steps ports.StepReporter) *StepProcessor {
	return &StepProcessor{steps: steps}
}

// NewProvider builds the tracer provider used by the build pipeline.
func NewProvider(steps ports.StepReporter) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewStepProcessor(steps)))
}

// OnStart opens a step nested under the step of the parent span, if any.
func (p *StepProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	id, ok := p.stepID(s.SpanContext())
	if !ok {
		return
	}
	p.steps.OnStepStart(id, parentStep(parent), s.Name(), s.StartTime())
}

// OnEnd closes the step, failing it when the span status is an error.
func (p *StepProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	id, ok := p.stepID(s.SpanContext())
	if !ok {
		return
	}
	p.steps.OnStepComplete(id, s.EndTime(), stepErr(s.Status()))
}

// ForceFlush is a no-op; steps are reported synchronously.
func (p *StepProcessor) ForceFlush(context.Context) error { return nil }

// Shutdown is a no-op.
func (p *StepProcessor) Shutdown(context.Context) error { return nil }

func (p *StepProcessor) stepID(sc trace.SpanContext) (string, bool) {
	if p.steps == nil || !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

func parentStep(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}

func stepErr(status sdktrace.Status) error {
	switch {
	case status.Code != codes.Error:
		return nil
	case status.Description == "":
		return errStepFailed
	default:
		return errors.New(status.Description)
	}
}
