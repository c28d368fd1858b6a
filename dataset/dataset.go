package dataset

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/point"
	"golang.org/x/sync/errgroup"
)

// Encode formats pts and applies compression c.
func Encode(pts []point.Point, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, pts); err != nil {
		return nil, err
	}
	return compress(buf.Bytes(), c)
}

// Decode reverses Encode.
func Decode(data []byte, c Compression) ([]point.Point, error) {
	raw, err := decompress(data, c)
	if err != nil {
		return nil, fmt.Errorf("dataset: decompress %s: %w", c, err)
	}
	return Parse(bytes.NewReader(raw))
}

// Load reads the named dataset from store. The compression is chosen by
// CompressionFor(name).
func Load(ctx context.Context, store blobstore.BlobStore, name string) ([]point.Point, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	pts, err := Decode(data, CompressionFor(name))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return pts, nil
}

// Save writes pts to store under name, compressed according to its suffix.
func Save(ctx context.Context, store blobstore.BlobStore, name string, pts []point.Point) error {
	data, err := Encode(pts, CompressionFor(name))
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return store.Put(ctx, name, data)
}

// Named is a dataset together with the blob name it was loaded from.
type Named struct {
	Name   string
	Points []point.Point
}

// LoadAll loads every named dataset with at most concurrency loads in
// flight (unbounded if concurrency <= 0). Results are returned in the order
// of names. The first error cancels the remaining loads.
func LoadAll(ctx context.Context, store blobstore.BlobStore, names []string, concurrency int) ([]Named, error) {
	out := make([]Named, len(names))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, name := range names {
		g.Go(func() error {
			pts, err := Load(ctx, store, name)
			if err != nil {
				return err
			}
			out[i] = Named{Name: name, Points: pts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
