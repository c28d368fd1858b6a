// Package point provides the 2-D point type used throughout lloyd together
// with Euclidean distance, summation and averaging.
//
// # Usage
//
//	p := point.New(0, 0)
//	q := point.New(3, 4)
//	d := point.Distance(p, q) // 5
//	c := point.Average([]point.Point{p, q}, point.Truncate) // {1, 2}
package point
