package kmeans

import (
	"fmt"
	"slices"

	"github.com/hupe1980/lloyd/point"
)

// EmptyClusterPolicy decides what happens to a mean that owns no points after
// re-partitioning.
type EmptyClusterPolicy int

const (
	// EmptyDrop removes the mean from the next iteration; the number of
	// clusters shrinks.
	EmptyDrop EmptyClusterPolicy = iota
	// EmptyReseedFarthest replaces the mean with the point farthest from its
	// own mean that is not already a mean.
	EmptyReseedFarthest
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case EmptyDrop:
		return "drop"
	case EmptyReseedFarthest:
		return "reseed"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Config controls centroid arithmetic and empty-cluster handling.
type Config struct {
	Rounding point.Rounding
	Empty    EmptyClusterPolicy
}

// Refiner runs Lloyd's iteration. It starts RUNNING with the clusters of the
// initial means and becomes CONVERGED once the recomputed means equal the
// current means as a set.
type Refiner struct {
	cfg        Config
	points     []point.Point
	means      []point.Point
	slots      []Cluster
	iterations int
	converged  bool
}

// NewRefiner partitions points against the initial means.
func NewRefiner(points, means []point.Point, cfg Config) (*Refiner, error) {
	slots, err := assign(means, points)
	if err != nil {
		return nil, err
	}

	return &Refiner{
		cfg:        cfg,
		points:     points,
		means:      slices.Clone(means),
		slots:      slots,
		iterations: 1,
	}, nil
}

// Step performs one update: it recomputes the means from the current clusters
// and either reports convergence, leaving the clusters untouched, or
// re-partitions against the new means. Step is a no-op once converged.
func (r *Refiner) Step() (bool, error) {
	if r.converged {
		return true, nil
	}

	next, err := r.nextMeans()
	if err != nil {
		return false, err
	}
	if sameSet(next, r.means) {
		r.converged = true
		return true, nil
	}

	slots, err := assign(next, r.points)
	if err != nil {
		return false, err
	}

	r.means = next
	r.slots = slots
	r.iterations++
	return false, nil
}

// Settle runs only the convergence check of Step. When the recomputed means
// equal the current ones the refiner becomes CONVERGED; otherwise its state is
// left unchanged and no partition step is spent.
func (r *Refiner) Settle() (bool, error) {
	if r.converged {
		return true, nil
	}

	next, err := r.nextMeans()
	if err != nil {
		return false, err
	}
	r.converged = sameSet(next, r.means)
	return r.converged, nil
}

// nextMeans computes the means of the current clusters, applying the empty
// cluster policy.
func (r *Refiner) nextMeans() ([]point.Point, error) {
	next := make([]point.Point, 0, len(r.slots))
	var empty []int
	for _, c := range r.slots {
		if c.Len() == 0 {
			if r.cfg.Empty == EmptyReseedFarthest {
				empty = append(empty, len(next))
				next = append(next, c.Mean)
			}
			continue
		}
		m, err := Centroid(c.Points, r.cfg.Rounding)
		if err != nil {
			return nil, err
		}
		next = append(next, m)
	}

	if len(empty) > 0 {
		r.reseed(next, empty)
	}
	return next, nil
}

// reseed replaces next[i] for every i in empty with the point farthest from
// its current mean. Points that already serve as a mean are skipped. When no
// candidate is left the stale mean is kept.
func (r *Refiner) reseed(next []point.Point, empty []int) {
	taken := make(map[point.Point]struct{}, len(next))
	for i, m := range next {
		if !slices.Contains(empty, i) {
			taken[m] = struct{}{}
		}
	}

	for _, i := range empty {
		best, bestDist, found := point.Point{}, -1.0, false
		for _, c := range r.slots {
			for _, p := range c.Points {
				if _, ok := taken[p]; ok {
					continue
				}
				if d := point.Distance(p, c.Mean); d > bestDist {
					best, bestDist, found = p, d, true
				}
			}
		}
		if found {
			next[i] = best
		}
		taken[next[i]] = struct{}{}
	}
}

// Converged reports whether the refiner reached a fixed point.
func (r *Refiner) Converged() bool {
	return r.converged
}

// Iterations returns the number of partition steps performed so far,
// including the initial one.
func (r *Refiner) Iterations() int {
	return r.iterations
}

// Means returns the means the current clusters were computed from.
func (r *Refiner) Means() []point.Point {
	return slices.Clone(r.means)
}

// Clusters returns the current non-empty clusters in mean order.
func (r *Refiner) Clusters() []Cluster {
	return compact(r.slots)
}

// SSE returns the within-cluster sum of squared distances of the current clusters.
func (r *Refiner) SSE() float64 {
	return SSE(r.slots)
}
