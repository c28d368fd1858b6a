// Package lloyd clusters 2-D points with Lloyd's k-means algorithm.
//
// Every point ends up in the group whose mean it is closest to. Means start
// as k distinct input points drawn at random and are refined by alternating
// assignment and averaging until the set of means stops changing.
//
// # Quick Start
//
//	ctx := context.Background()
//	points := []point.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 10, Y: 10}, {X: 11, Y: 10}}
//	res, err := lloyd.Cluster(ctx, points, 2, lloyd.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, g := range res.Groups {
//	    fmt.Println(i, g.Mean, g.Points)
//	}
//
// # Determinism
//
// Initialization is random. Pass WithSeed or WithRand for reproducible runs,
// or WithInitialMeans to skip sampling entirely.
//
// # Centroid Arithmetic
//
// Means are truncated toward zero per axis by default, so integer inputs
// always produce integer means. WithCentroidMode
// (CentroidExact) switches to plain floating-point averages.
//
// # Empty Clusters
//
// A mean whose region contains no points is dropped by default, so a result
// may have fewer than k groups. WithEmptyClusterPolicy(EmptyReseedFarthest)
// moves such a mean onto the worst-fitting point instead.
//
// # Collaborators
//
// Loading coordinate files (package dataset), storage (package blobstore),
// reports (package report) and rendering (package plot) live outside the
// core and are never required to run a clustering.
package lloyd
