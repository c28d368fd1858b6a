// Package prometheus exports clustering metrics through
// github.com/prometheus/client_golang.
//
//	reg := prometheus.NewRegistry()
//	mc, err := lloydprom.NewCollector(reg)
//	res, err := lloyd.Cluster(ctx, points, k, lloyd.WithMetricsCollector(mc))
package prometheus

import (
	"time"

	"github.com/hupe1980/lloyd"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lloyd"

// Collector implements lloyd.MetricsCollector.
type Collector struct {
	runLatency *prometheus.HistogramVec
	runs       *prometheus.CounterVec
	points     prometheus.Counter
	iterations prometheus.Counter
	runSteps   prometheus.Histogram
	clusters   prometheus.Gauge
	sse        prometheus.Gauge
}

var _ lloyd.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of clustering runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Clustering runs by outcome (converged, unconverged, error)",
		}, []string{"status"}),
		points: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Points clustered",
		}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Refinement iterations across all runs",
		}),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Partition steps per run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters",
			Help:      "Non-empty clusters after the latest iteration",
		}),
		sse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sse",
			Help:      "Within-cluster sum of squared distances after the latest iteration",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.runLatency, c.runs, c.points, c.iterations, c.runSteps, c.clusters, c.sse,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordIteration implements lloyd.MetricsCollector.
func (c *Collector) RecordIteration(clusters int, sse float64) {
	c.iterations.Inc()
	c.clusters.Set(float64(clusters))
	c.sse.Set(sse)
}

// RecordRun implements lloyd.MetricsCollector.
func (c *Collector) RecordRun(points, iterations int, converged bool, d time.Duration, err error) {
	status := "converged"
	switch {
	case err != nil:
		status = "error"
	case !converged:
		status = "unconverged"
	}

	c.runLatency.WithLabelValues(status).Observe(d.Seconds())
	c.runs.WithLabelValues(status).Inc()
	if err == nil {
		c.points.Add(float64(points))
		c.runSteps.Observe(float64(iterations))
	}
}
