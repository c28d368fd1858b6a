package blobstore

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps blobs in process memory. Every Put stores a private
// snapshot, so datasets and reports written through it cannot be changed by
// the caller afterwards, and handles returned by Open keep reading the
// snapshot they were opened on even if the blob is replaced or deleted.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// Open returns a handle on the current snapshot of name.
func (s *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	key, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	snap, ok := s.snapshots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return newBytesBlob(snap), nil
}

// Put stores a copy of data under name.
func (s *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	key, err := CleanName(name)
	if err != nil {
		return err
	}
	snap := bytes.Clone(data)
	if snap == nil {
		snap = []byte{}
	}

	s.mu.Lock()
	s.snapshots[key] = snap
	s.mu.Unlock()
	return nil
}

// Delete drops name. Open handles already taken stay readable.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	key, err := CleanName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.snapshots, key)
	s.mu.Unlock()
	return nil
}

// List returns the sorted names starting with prefix.
func (s *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	names := slices.Sorted(maps.Keys(s.snapshots))
	s.mu.RUnlock()

	return slices.DeleteFunc(names, func(n string) bool {
		return !strings.HasPrefix(n, prefix)
	}), nil
}

// bytesBlob serves reads from an immutable byte slice.
type bytesBlob struct {
	r *bytes.Reader
}

func newBytesBlob(data []byte) *bytesBlob {
	return &bytesBlob{r: bytes.NewReader(data)}
}

func (b *bytesBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.r.ReadAt(p, off)
}

func (b *bytesBlob) Close() error {
	return nil
}

func (b *bytesBlob) Size() int64 {
	return b.r.Size()
}
