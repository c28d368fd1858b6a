// Package kmeans implements Lloyd's k-means clustering over 2-D points.
//
// The package is split into the pure building blocks of the algorithm
// (Nearest, Partition, Centroid, Initialize) and a Refiner that drives the
// assign/update iteration until the set of means stops changing.
//
// Everything here is synchronous and allocation-only: no goroutines, no I/O
// and no cancellation. Iteration caps and context handling are applied by the
// caller between Refiner steps.
package kmeans
