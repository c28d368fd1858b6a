package point

import (
	"fmt"
	"math"
)

// Point is an immutable 2-D coordinate. Points are comparable and may be used
// as map keys; equality is by value.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// New returns the point (x, y).
func New(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("[%g %g]", p.X, p.Y)
}

// Distance calculates the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// SquaredDistance calculates the squared Euclidean distance between p and q.
func SquaredDistance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Sum returns the component-wise sum of points. The sum of no points is the origin.
func Sum(points []Point) Point {
	var s Point
	for _, p := range points {
		s = s.Add(p)
	}
	return s
}

// Rounding selects how Average reduces the per-axis quotient.
type Rounding int

const (
	// Truncate rounds each axis toward zero, the output-compatible default.
	Truncate Rounding = iota
	// Exact keeps the floating-point quotient.
	Exact
)

func (r Rounding) String() string {
	switch r {
	case Truncate:
		return "truncate"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// Average returns the per-axis arithmetic mean of points.
// Returns false if points is empty.
func Average(points []Point, r Rounding) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	s := Sum(points)
	n := float64(len(points))
	avg := Point{X: s.X / n, Y: s.Y / n}
	if r == Truncate {
		avg = Point{X: math.Trunc(avg.X), Y: math.Trunc(avg.Y)}
	}
	return avg, true
}

// Distinct returns the number of distinct points.
func Distinct(points []Point) int {
	seen := make(map[Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	return len(seen)
}
