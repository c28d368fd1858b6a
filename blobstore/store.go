package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned for blob names that are empty, absolute or
// climb out of the store root.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// CleanName validates a slash-separated blob name and returns its canonical
// form, so that "a/./b" and "a/b" address the same blob.
func CleanName(name string) (string, error) {
	clean := path.Clean(name)
	if !filepath.IsLocal(filepath.FromSlash(name)) || path.IsAbs(name) || clean == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return clean, nil
}

// ListPrefix returns the key prefix that selects the blobs under root whose
// relative name starts with prefix. A non-empty root always ends in "/", so
// root "data" never matches keys under "database/".
func ListPrefix(root, prefix string) string {
	root = strings.Trim(root, "/")
	if root == "" {
		return prefix
	}
	return root + "/" + prefix
}

// RelName strips the root directory from a key returned by a listing.
func RelName(root, key string) string {
	root = strings.Trim(root, "/")
	if root == "" {
		return key
	}
	return strings.TrimPrefix(key, root+"/")
}

// BlobStore is an abstraction for reading and writing named data blobs
// (datasets, reports, plots).
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// ReadAll opens the named blob and returns its full content.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	buf := make([]byte, b.Size())
	if len(buf) == 0 {
		return buf, nil
	}
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if n != len(buf) {
		return nil, fmt.Errorf("read %s: short read %d of %d bytes: %w", name, n, len(buf), io.ErrUnexpectedEOF)
	}
	return buf, nil
}
