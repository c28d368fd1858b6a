package kmeans

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/lloyd/point"
)

var (
	// ErrInvalidInput is returned for precondition violations such as an empty
	// means sequence or a k that cannot be satisfied by the point set.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDivisionByEmptyCluster is returned when a centroid is requested for
	// a cluster without points.
	ErrDivisionByEmptyCluster = errors.New("division by empty cluster")
)

// Rand is the random source used by Initialize.
// *rand.Rand and testutil.RNG satisfy it.
type Rand interface {
	Perm(n int) []int
}

// Cluster is the group of points assigned to one mean.
type Cluster struct {
	Mean    point.Point
	Points  []point.Point
	Indices []int // positions of Points in the input point set
}

// Len returns the number of points in the cluster.
func (c Cluster) Len() int {
	return len(c.Points)
}

// Nearest returns the index of the mean closest to p.
// Ties resolve to the first minimal mean in the given order.
func Nearest(p point.Point, means []point.Point) (int, error) {
	if len(means) == 0 {
		return -1, fmt.Errorf("%w: no means", ErrInvalidInput)
	}

	best := 0
	minDist := math.Inf(1)
	for j, m := range means {
		d := point.Distance(p, m)
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best, nil
}

// assign groups every point under its nearest mean. The result has exactly
// one slot per mean; slots of means that own no points are empty.
func assign(means, points []point.Point) ([]Cluster, error) {
	if len(means) == 0 {
		return nil, fmt.Errorf("%w: no means", ErrInvalidInput)
	}

	slots := make([]Cluster, len(means))
	for j, m := range means {
		slots[j].Mean = m
	}

	for i, p := range points {
		j, err := Nearest(p, means)
		if err != nil {
			return nil, err
		}
		slots[j].Points = append(slots[j].Points, p)
		slots[j].Indices = append(slots[j].Indices, i)
	}

	return slots, nil
}

func compact(slots []Cluster) []Cluster {
	clusters := make([]Cluster, 0, len(slots))
	for _, c := range slots {
		if c.Len() > 0 {
			clusters = append(clusters, c)
		}
	}
	return clusters
}

// Partition assigns every point to its nearest mean and returns the non-empty
// clusters in the order of their means. Points keep their input order inside
// a cluster. Neither input is modified.
func Partition(means, points []point.Point) ([]Cluster, error) {
	slots, err := assign(means, points)
	if err != nil {
		return nil, err
	}
	return compact(slots), nil
}

// Centroid returns the per-axis average of points.
func Centroid(points []point.Point, r point.Rounding) (point.Point, error) {
	c, ok := point.Average(points, r)
	if !ok {
		return point.Point{}, ErrDivisionByEmptyCluster
	}
	return c, nil
}

// Initialize picks k distinct points uniformly at random without replacement.
//
// k is validated against the number of distinct points upfront, so the
// selection always terminates. Walking a random permutation and keeping the
// first k unseen values yields the same distribution as repeated draws with
// rejection of duplicates.
func Initialize(points []point.Point, k int, rnd Rand) ([]point.Point, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidInput)
	}
	if distinct := point.Distinct(points); k > distinct {
		return nil, fmt.Errorf("%w: k=%d exceeds %d distinct points", ErrInvalidInput, k, distinct)
	}

	means := make([]point.Point, 0, k)
	seen := make(map[point.Point]struct{}, k)
	for _, idx := range rnd.Perm(len(points)) {
		p := points[idx]
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		means = append(means, p)
		if len(means) == k {
			break
		}
	}

	return means, nil
}

// SSE returns the within-cluster sum of squared distances of every point to
// its cluster mean.
func SSE(clusters []Cluster) float64 {
	var sum float64
	for _, c := range clusters {
		for _, p := range c.Points {
			sum += point.SquaredDistance(p, c.Mean)
		}
	}
	return sum
}

// sameSet reports whether a and b hold the same points, ignoring order and
// duplicates.
func sameSet(a, b []point.Point) bool {
	sa := make(map[point.Point]struct{}, len(a))
	for _, p := range a {
		sa[p] = struct{}{}
	}
	sb := make(map[point.Point]struct{}, len(b))
	for _, p := range b {
		if _, ok := sa[p]; !ok {
			return false
		}
		sb[p] = struct{}{}
	}
	return len(sa) == len(sb)
}
