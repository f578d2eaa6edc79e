package telemetry

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"taskboard/internal/core/telemetry"
)

func TestNewContainer_MetricsOnly(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()
	container, err := NewContainer(ctx, Config{ServiceName: "todos", ServiceVersion: "test"}, nil)

	Expect(err).ToNot(HaveOccurred())
	Expect(container.TracerProvider).To(BeNil())
	Expect(container.MetricsServer).To(BeNil())
	Expect(container.NewTelemetryProbe()).To(BeAssignableToTypeOf(&telemetry.NoOpProbe{}))

	container.AppMetrics.RecordTodoOperation(ctx, "create")

	count, err := testutil.GatherAndCount(container.PrometheusRegistry, "todo_operations_total")
	Expect(err).ToNot(HaveOccurred())
	Expect(count).To(Equal(1))

	Expect(container.Shutdown(ctx)).To(Succeed())
}
