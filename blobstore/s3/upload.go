package s3

import (
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
)

// UploadConfig tunes how Put hands payloads to the S3 upload manager.
// Part sizes are derived per payload: a dataset or report that fits in one
// part goes out as a single PutObject, larger ones are split into parts of at
// least MinPartSize and never into more than the S3 limit of parts.
type UploadConfig struct {
	// MinPartSize is the smallest part used for multipart uploads. Values
	// below the S3 minimum of 5 MiB are raised to it.
	MinPartSize int64

	// Concurrency caps the number of parts sent in parallel.
	Concurrency int

	// LeavePartsOnError keeps the parts of a failed multipart upload instead
	// of aborting it.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns the upload manager's own part size and
// concurrency.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		MinPartSize: manager.MinUploadPartSize,
		Concurrency: manager.DefaultUploadConcurrency,
	}
}

// partSize returns the part size for a payload of n bytes.
func (c UploadConfig) partSize(n int64) int64 {
	size := max(c.MinPartSize, manager.MinUploadPartSize)
	maxParts := int64(manager.MaxUploadParts)
	if n > size*maxParts {
		size = (n + maxParts - 1) / maxParts
	}
	return size
}

// parts returns the number of parts a payload of n bytes is split into.
func (c UploadConfig) parts(n int64) int64 {
	size := c.partSize(n)
	return max(1, (n+size-1)/size)
}

// uploadOptions sizes a single upload of n bytes.
func (c UploadConfig) uploadOptions(n int64) func(*manager.Uploader) {
	return func(u *manager.Uploader) {
		u.PartSize = c.partSize(n)
		u.Concurrency = int(min(int64(max(c.Concurrency, 1)), c.parts(n)))
		u.LeavePartsOnError = c.LeavePartsOnError
	}
}

// contentType maps the suffixes of datasets, reports and plots to a MIME type.
func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst":
		return "application/zstd"
	case ".lz4":
		return "application/x-lz4"
	case ".json":
		return "application/json"
	case ".html":
		return "text/html; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
