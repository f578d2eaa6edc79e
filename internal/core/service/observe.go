package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"taskboard/internal/core/port"
)

// startOperation opens a service span; the returned func closes it and
// reports the outcome.
func startOperation(ctx context.Context, probe port.Telemetry, service, operation, userID string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := probe.StartServiceSpan(ctx, service, operation, userID, attrs)
	start := time.Now()

	return ctx, func(err error) {
		probe.RecordServiceOperation(ctx, service, operation, userID, time.Since(start), err)
		span.End()
	}
}
