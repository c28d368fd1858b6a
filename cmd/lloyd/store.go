package main

import (
	"context"
	"math"

	"github.com/hupe1980/lloyd/blobstore"
	minioblob "github.com/hupe1980/lloyd/blobstore/minio"
	s3blob "github.com/hupe1980/lloyd/blobstore/s3"
)

func openBackend(ctx context.Context, cfg *config) (blobstore.BlobStore, error) {
	switch cfg.Store {
	case "s3":
		opts := []s3blob.Option{s3blob.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3blob.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3blob.WithEndpoint(cfg.Endpoint))
		}
		return s3blob.New(ctx, cfg.Bucket, opts...)
	case "minio":
		return minioblob.New(ctx, minioblob.Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Secure:    cfg.Secure,
			Region:    cfg.Region,
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
		})
	default:
		return blobstore.NewLocalStore(cfg.Root), nil
	}
}

// openStore layers rate limiting and the local cache over the backend.
// Cache hits bypass the limiter.
func openStore(ctx context.Context, cfg *config) (blobstore.BlobStore, error) {
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		burst := int(math.Max(1, math.Ceil(cfg.RateLimit)))
		store = blobstore.NewThrottledStore(store, cfg.RateLimit, burst)
	}

	if cfg.CacheDir != "" {
		cs := blobstore.NewCachingStore(store, blobstore.NewLocalStore(cfg.CacheDir))
		if err := cs.Warm(ctx, cfg.Inputs...); err != nil {
			return nil, err
		}
		store = cs
	}
	return store, nil
}
