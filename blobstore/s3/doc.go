// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	points, err := dataset.Load(ctx, store, "blobs.txt.zst")
//
// # Features
//
//   - Range reads for partial fetches
//   - Managed (multipart for large bodies) uploads
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
