// Package dataset reads and writes point sets.
//
// The on-disk format is plain text with one point per line:
//
//	# x y
//	0 0
//	1.5 -2
//
// Blank lines and lines starting with '#' are ignored. Blob names ending in
// ".zst" are zstd compressed and names ending in ".lz4" are LZ4 frames;
// Load and Save apply the matching codec transparently.
package dataset
