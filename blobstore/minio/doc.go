// Package minio provides a BlobStore backed by MinIO or any other
// S3-compatible server reachable through the MinIO client.
//
//	store, err := minioblob.New(ctx, minioblob.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "lloyd",
//	    Prefix:    "datasets/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pts, err := dataset.Load(ctx, store, "blobs.txt.zst")
package minio
