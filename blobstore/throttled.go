package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledStore limits the request rate against an inner BlobStore.
// Every Open, Put, Delete and List consumes one token; reads through an
// opened Blob are not throttled.
type ThrottledStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottledStore allows up to requestsPerSec requests with the given burst.
// A non-positive requestsPerSec disables throttling.
func NewThrottledStore(inner BlobStore, requestsPerSec float64, burst int) *ThrottledStore {
	limit := rate.Inf
	if requestsPerSec > 0 {
		limit = rate.Limit(requestsPerSec)
	}
	if burst <= 0 {
		burst = 1
	}
	return &ThrottledStore{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Open(ctx, name)
}

func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.List(ctx, prefix)
}
