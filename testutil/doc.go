// Package testutil provides testing utilities for lloyd.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source that doubles as the
// initialization source for clustering, plus generators for synthetic
// point sets.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.Blobs([]point.Point{{X: 0, Y: 0}, {X: 50, Y: 50}}, 100, 2)
//	res, _ := lloyd.Cluster(ctx, pts, 2, lloyd.WithRand(rng))
package testutil
