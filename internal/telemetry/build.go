package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const pipelineScopeName = "github.com/steveyegge/strata/pipeline"

// BuildMetrics records pipeline build activity in strata.pipeline.* metrics.
// A zero or nil value is safe to use and records nothing.
type BuildMetrics struct {
	builds  metric.Int64Counter
	tickets metric.Int64Counter
	dur     metric.Float64Histogram
}

// NewBuildMetrics creates the pipeline instruments. Returns nil when telemetry
// is disabled so callers can skip attribute construction entirely.
func NewBuildMetrics() *BuildMetrics {
	if !Enabled() {
		return nil
	}
	meter := Meter(pipelineScopeName)

	builds, err := meter.Int64Counter("strata.pipeline.builds",
		metric.WithDescription("Number of dashboard builds"))
	if err != nil {
		return nil
	}
	tickets, err := meter.Int64Counter("strata.pipeline.tickets",
		metric.WithDescription("Number of tickets processed"))
	if err != nil {
		return nil
	}
	dur, err := meter.Float64Histogram("strata.pipeline.build_duration_ms",
		metric.WithDescription("Build duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil
	}

	return &BuildMetrics{builds: builds, tickets: tickets, dur: dur}
}

// RecordBuild counts one build of the given reference cycle.
func (m *BuildMetrics) RecordBuild(ctx context.Context, cycleID string, tickets int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("cycle", cycleID))
	m.builds.Add(ctx, 1, attrs)
	m.tickets.Add(ctx, int64(tickets), attrs)
	m.dur.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}
