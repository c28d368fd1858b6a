// Package blobstore provides the storage abstraction lloyd reads datasets
// from and writes reports and plots to.
//
// BlobStore is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem, atomic writes via rename
//   - MemoryStore: In-memory, for tests
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Wrappers
//
//   - CachingStore: read-through whole-blob cache (e.g. S3 behind a local directory)
//   - ThrottledStore: request rate limiting for remote backends
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
