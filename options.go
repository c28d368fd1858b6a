package lloyd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hupe1980/lloyd/internal/kmeans"
	"github.com/hupe1980/lloyd/point"
)

// CentroidMode selects how cluster means are computed from their points.
type CentroidMode = point.Rounding

const (
	// CentroidTruncate truncates each axis of the average toward zero.
	// This is the default and yields integer means for integer input.
	CentroidTruncate = point.Truncate
	// CentroidExact keeps the floating-point average.
	CentroidExact = point.Exact
)

// EmptyClusterPolicy decides what happens to a mean that ends up owning no points.
type EmptyClusterPolicy = kmeans.EmptyClusterPolicy

const (
	// EmptyDrop removes the mean; the result may hold fewer than k clusters.
	EmptyDrop = kmeans.EmptyDrop
	// EmptyReseedFarthest moves the mean onto the point farthest from its own mean.
	EmptyReseedFarthest = kmeans.EmptyReseedFarthest
)

// ParseCentroidMode parses "truncate" or "exact".
func ParseCentroidMode(s string) (CentroidMode, error) {
	for _, m := range []CentroidMode{CentroidTruncate, CentroidExact} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown centroid mode %q", ErrInvalidInput, s)
}

// ParseEmptyClusterPolicy parses "drop" or "reseed".
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	for _, p := range []EmptyClusterPolicy{EmptyDrop, EmptyReseedFarthest} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown empty cluster policy %q", ErrInvalidInput, s)
}

// Rand is the random source used to draw the initial means.
// *rand.Rand and testutil.RNG satisfy it.
type Rand = kmeans.Rand

type options struct {
	rand             Rand
	initialMeans     []point.Point
	maxIterations    int
	centroidMode     CentroidMode
	emptyPolicy      EmptyClusterPolicy
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		centroidMode:     CentroidTruncate,
		emptyPolicy:      EmptyDrop,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Cluster call.
type Option func(*options)

// WithRand sets the random source used to pick the initial means.
//
// If no source is configured a time-seeded one is used, so results differ
// between runs.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithSeed is shorthand for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rand = rand.New(rand.NewSource(seed)) // nolint gosec
	}
}

// WithInitialMeans skips random initialization and starts from the given means.
// The number of means overrides k.
func WithInitialMeans(means ...point.Point) Option {
	return func(o *options) {
		o.initialMeans = means
	}
}

// WithMaxIterations caps the number of partition steps.
// A run that hits the cap returns its current clusters with Converged set to false.
// Zero or a negative value means no cap, which is the default.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithCentroidMode selects truncating (default) or exact centroid arithmetic.
func WithCentroidMode(m CentroidMode) Option {
	return func(o *options) {
		o.centroidMode = m
	}
}

// WithEmptyClusterPolicy selects how means without points are handled.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyPolicy = p
	}
}

// WithLogger configures structured logging.
// If nil is passed, logging is disabled.
//
// Example:
//
//	logger := lloyd.NewTextLogger(slog.LevelDebug)
//	res, err := lloyd.Cluster(ctx, points, 3, lloyd.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	res, err := lloyd.Cluster(ctx, points, 3, lloyd.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func newTimeSeededRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
}
