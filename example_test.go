package lloyd_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/point"
)

// Example_initialMeans clusters two obvious groups from fixed starting means.
func Example_initialMeans() {
	points := []point.Point{
		point.New(0, 0), point.New(1, 0), point.New(0, 1),
		point.New(10, 10), point.New(11, 10), point.New(10, 11),
	}

	res, err := lloyd.Cluster(context.Background(), points, 2,
		lloyd.WithInitialMeans(point.New(0, 0), point.New(10, 10)))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("groups:", res.K())
	fmt.Println("iterations:", res.Iterations)
	for _, g := range res.Groups {
		fmt.Println(g.Mean, g.Points)
	}
	fmt.Println("sse:", res.SSE())
	fmt.Println("labels:", res.Labels())
	// Output:
	// groups: 2
	// iterations: 1
	// [0 0] [[0 0] [1 0] [0 1]]
	// [10 10] [[10 10] [11 10] [10 11]]
	// sse: 4
	// labels: [0 0 0 1 1 1]
}

// ExampleCluster_identicalPoints shows that a single cluster over identical
// points converges immediately onto that point.
func ExampleCluster_identicalPoints() {
	points := []point.Point{point.New(3, -4), point.New(3, -4), point.New(3, -4)}

	res, err := lloyd.Cluster(context.Background(), points, 1, lloyd.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Means, res.Iterations, res.Converged)
	// Output: [[3 -4]] 1 true
}

// ExampleCluster_insufficientPoints shows the error for a k larger than the
// number of distinct points.
func ExampleCluster_insufficientPoints() {
	points := []point.Point{point.New(1, 1), point.New(1, 1), point.New(2, 2)}

	_, err := lloyd.Cluster(context.Background(), points, 3, lloyd.WithSeed(1))
	fmt.Println(err)
	// Output: k=3 exceeds 2 distinct points
}
