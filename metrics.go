package lloyd

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see the metrics/prometheus package for a ready-made adapter.
type MetricsCollector interface {
	// RecordIteration is called after every refinement step that did not converge.
	// clusters is the number of non-empty clusters, sse the within-cluster
	// sum of squared distances after re-partitioning.
	RecordIteration(clusters int, sse float64)

	// RecordRun is called once per Cluster call.
	// iterations is the number of partition steps performed, err is nil if successful.
	RecordRun(points, iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(int, float64)                   {}
func (NoopMetricsCollector) RecordRun(int, int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunsUnconverged atomic.Int64
	RunTotalNanos   atomic.Int64
	PointsTotal     atomic.Int64
	IterationCount  atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(int, float64) {
	b.IterationCount.Add(1)
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(points, iterations int, converged bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	b.PointsTotal.Add(int64(points))
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	if !converged {
		b.RunsUnconverged.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:        b.RunCount.Load(),
		RunErrors:       b.RunErrors.Load(),
		RunsUnconverged: b.RunsUnconverged.Load(),
		RunAvgNanos:     b.getAvgRunNanos(),
		PointsTotal:     b.PointsTotal.Load(),
		IterationCount:  b.IterationCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount        int64
	RunErrors       int64
	RunsUnconverged int64
	RunAvgNanos     int64
	PointsTotal     int64
	IterationCount  int64
}
