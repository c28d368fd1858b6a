package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/lloyd/point"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n).
// It makes RNG usable as the random source for initialization.
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// UniformPoints generates num points with coordinates in [minVal, maxVal).
func (r *RNG) UniformPoints(num int, minVal, maxVal float64) []point.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	points := make([]point.Point, num)
	for i := range points {
		points[i] = point.New(minVal+r.rand.Float64()*span, minVal+r.rand.Float64()*span)
	}
	return points
}

// GridPoints generates num points with integer coordinates in [0, size).
// Integer inputs are what the truncating centroid arithmetic is designed for.
func (r *RNG) GridPoints(num, size int) []point.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]point.Point, num)
	for i := range points {
		points[i] = point.New(float64(r.rand.Intn(size)), float64(r.rand.Intn(size)))
	}
	return points
}

// Blobs generates perCenter points around each center with Gaussian noise of
// the given standard deviation. Points are emitted center by center.
func (r *RNG) Blobs(centers []point.Point, perCenter int, stddev float64) []point.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]point.Point, 0, len(centers)*perCenter)
	for _, c := range centers {
		for range perCenter {
			points = append(points, point.New(
				c.X+r.rand.NormFloat64()*stddev,
				c.Y+r.rand.NormFloat64()*stddev,
			))
		}
	}
	return points
}

// NearestCenter returns the index of the center closest to p.
// Used as ground truth for well-separated blobs.
func NearestCenter(p point.Point, centers []point.Point) int {
	best, bestDist := -1, math.Inf(1)
	for i, c := range centers {
		if d := point.Distance(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
