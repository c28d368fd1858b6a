package lloyd

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/lloyd/internal/kmeans"
	"github.com/hupe1980/lloyd/point"
)

// Group is the set of points assigned to one mean.
type Group = kmeans.Cluster

// Result is the terminal cluster assignment of a Cluster call.
type Result struct {
	// Groups are the non-empty clusters, ordered like the means they belong to.
	Groups []Group
	// Means are the means of Groups, in the same order.
	Means []point.Point
	// Iterations is the number of partition steps performed.
	Iterations int
	// Converged is false only when WithMaxIterations stopped the run early.
	Converged bool

	numPoints int
	sse       float64
	members   []*roaring.Bitmap
}

func newResult(numPoints int, r *kmeans.Refiner) *Result {
	groups := r.Clusters()
	means := make([]point.Point, len(groups))
	members := make([]*roaring.Bitmap, len(groups))
	for i, g := range groups {
		means[i] = g.Mean
		bm := roaring.New()
		for _, idx := range g.Indices {
			bm.Add(uint32(idx))
		}
		members[i] = bm
	}

	return &Result{
		Groups:     groups,
		Means:      means,
		Iterations: r.Iterations(),
		Converged:  r.Converged(),
		numPoints:  numPoints,
		sse:        r.SSE(),
		members:    members,
	}
}

// K returns the number of non-empty clusters.
func (r *Result) K() int {
	return len(r.Groups)
}

// SSE returns the within-cluster sum of squared distances.
func (r *Result) SSE() float64 {
	return r.sse
}

// Labels returns, for every input point, the index of its group.
func (r *Result) Labels() []int {
	labels := make([]int, r.numPoints)
	for gi, g := range r.Groups {
		for _, idx := range g.Indices {
			labels[idx] = gi
		}
	}
	return labels
}

// Membership returns one bitmap of input point indices per group.
// The bitmaps are copies and may be modified by the caller.
func (r *Result) Membership() []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, len(r.members))
	for i, bm := range r.members {
		out[i] = bm.Clone()
	}
	return out
}

// VerifyPartition checks that the groups form a total, disjoint partition of
// the n input points.
func (r *Result) VerifyPartition(n int) error {
	union := roaring.New()
	for i, bm := range r.members {
		if bm.IsEmpty() {
			return fmt.Errorf("group %d is empty", i)
		}
		if union.Intersects(bm) {
			return fmt.Errorf("group %d overlaps a previous group", i)
		}
		union.Or(bm)
	}

	if got := union.GetCardinality(); got != uint64(n) {
		return fmt.Errorf("partition covers %d of %d points", got, n)
	}
	if n > 0 && union.Maximum() != uint32(n-1) {
		return fmt.Errorf("partition references point %d beyond %d points", union.Maximum(), n)
	}
	return nil
}
