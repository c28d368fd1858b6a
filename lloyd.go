package lloyd

import (
	"context"
	"time"

	"github.com/hupe1980/lloyd/internal/kmeans"
	"github.com/hupe1980/lloyd/point"
)

// Cluster groups points into at most k clusters with Lloyd's algorithm.
//
// Initial means are k distinct points drawn with the configured random source
// (see WithRand, WithSeed) unless WithInitialMeans is given. The means are then
// refined until the recomputed set of means equals the current one.
//
// ctx is checked between iterations only; the algorithm itself never blocks.
func Cluster(ctx context.Context, points []point.Point, k int, optFns ...Option) (*Result, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	start := time.Now()
	res, err := run(ctx, points, k, &o)
	d := time.Since(start)

	iterations, converged := 0, false
	if res != nil {
		iterations, converged = res.Iterations, res.Converged
	}
	o.logger.WithK(k).LogRun(ctx, len(points), iterations, converged, d, err)
	o.metricsCollector.RecordRun(len(points), iterations, converged, d, err)

	return res, err
}

func run(ctx context.Context, points []point.Point, k int, o *options) (*Result, error) {
	if err := validate(points, k, o); err != nil {
		return nil, err
	}

	means := o.initialMeans
	if len(means) == 0 {
		rnd := o.rand
		if rnd == nil {
			rnd = newTimeSeededRand()
		}
		var err error
		means, err = kmeans.Initialize(points, k, rnd)
		if err != nil {
			return nil, translateError(err)
		}
	}

	r, err := kmeans.NewRefiner(points, means, kmeans.Config{
		Rounding: o.centroidMode,
		Empty:    o.emptyPolicy,
	})
	if err != nil {
		return nil, translateError(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// At the cap only the convergence check runs.
		if o.maxIterations > 0 && r.Iterations() >= o.maxIterations {
			if _, err := r.Settle(); err != nil {
				return nil, translateError(err)
			}
			break
		}

		done, err := r.Step()
		if err != nil {
			return nil, translateError(err)
		}
		if done {
			break
		}

		clusters, sse := len(r.Clusters()), r.SSE()
		o.logger.LogIteration(ctx, r.Iterations(), clusters, sse)
		o.metricsCollector.RecordIteration(clusters, sse)
	}

	return newResult(len(points), r), nil
}

func validate(points []point.Point, k int, o *options) error {
	if len(points) == 0 {
		return ErrInvalidInput
	}
	for i, p := range points {
		if !p.IsFinite() {
			return &ErrNonFinitePoint{Index: i}
		}
	}

	if len(o.initialMeans) > 0 {
		for _, m := range o.initialMeans {
			if !m.IsFinite() {
				return ErrInvalidInput
			}
		}
		return nil
	}

	if k <= 0 {
		return ErrInvalidK
	}
	if distinct := point.Distinct(points); k > distinct {
		return &ErrInsufficientPoints{K: k, Distinct: distinct}
	}
	return nil
}
