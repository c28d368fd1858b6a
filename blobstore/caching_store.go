package blobstore

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// CachingStore wraps a (typically remote) BlobStore and keeps read-through
// copies of whole blobs in a second (typically local) BlobStore.
type CachingStore struct {
	inner BlobStore
	cache BlobStore
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner, cache BlobStore) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache,
	}
}

// Open serves the blob from the cache, fetching it from the inner store on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.cache.Open(ctx, name)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	data, err := s.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	return newBytesBlob(data), nil
}

func (s *CachingStore) fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := ReadAll(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, name, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Put writes through to the inner store, then refreshes the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		return err
	}
	return s.cache.Put(ctx, name, data)
}

// Delete removes the blob from both stores.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	if err := s.cache.Delete(ctx, name); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

// List always consults the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Warm prefetches the named blobs into the cache in parallel.
// Blobs that are already cached are skipped.
func (s *CachingStore) Warm(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	// Limit concurrency to avoid FD exhaustion or rate limits
	g.SetLimit(16)

	for _, name := range names {
		g.Go(func() error {
			b, err := s.cache.Open(ctx, name)
			if err == nil {
				return b.Close()
			}
			if !errors.Is(err, ErrNotFound) {
				return err
			}
			_, err = s.fetch(ctx, name)
			return err
		})
	}
	return g.Wait()
}
