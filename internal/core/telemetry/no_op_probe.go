package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"taskboard/internal/core/port"
)

// NoOpProbe is used when telemetry is disabled and in tests.
type NoOpProbe struct{}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{}
}

func (p *NoOpProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, service string, operation string, userID string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func (p *NoOpProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordServiceOperation(ctx context.Context, service string, operation string, userID string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, userID string, metadata map[string]interface{}) {
}

func (p *NoOpProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
}

// Operation measures one repository call and reports it to the probe on End.
type Operation struct {
	probe     port.Telemetry
	ctx       context.Context
	span      trace.Span
	startTime time.Time
	operation string
	entity    string
}

func StartOperation(ctx context.Context, probe port.Telemetry, operation, entity string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	if probe == nil {
		probe = NewNoOpProbe()
	}

	ctx, span := probe.StartRepositorySpan(ctx, operation, entity, attrs)

	return ctx, &Operation{
		probe:     probe,
		ctx:       ctx,
		span:      span,
		startTime: time.Now(),
		operation: operation,
		entity:    entity,
	}
}

func (op *Operation) End(err error) {
	op.probe.RecordRepositoryOperation(op.ctx, op.operation, op.entity, time.Since(op.startTime), err)
	op.span.End()
}
