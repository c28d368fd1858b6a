package blobstore

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts Open calls against the wrapped store.
type countingStore struct {
	BlobStore
	opens atomic.Int64
}

func (c *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	c.opens.Add(1)
	return c.BlobStore.Open(ctx, name)
}

func TestCachingStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	remote := &countingStore{BlobStore: NewMemoryStore()}
	require.NoError(t, remote.Put(ctx, "ds.txt", []byte("1 2\n")))

	local := NewMemoryStore()
	store := NewCachingStore(remote, local)

	for range 3 {
		got, err := ReadAll(ctx, store, "ds.txt")
		require.NoError(t, err)
		assert.Equal(t, "1 2\n", string(got))
	}
	assert.Equal(t, int64(1), remote.opens.Load())

	cached, err := ReadAll(ctx, local, "ds.txt")
	require.NoError(t, err)
	assert.Equal(t, "1 2\n", string(cached))
}

func TestCachingStore_Miss(t *testing.T) {
	store := NewCachingStore(NewMemoryStore(), NewMemoryStore())

	_, err := store.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_PutDeleteList(t *testing.T) {
	ctx := context.Background()
	remote, local := NewMemoryStore(), NewMemoryStore()
	store := NewCachingStore(remote, local)

	require.NoError(t, store.Put(ctx, "r.json", []byte("{}")))
	for _, s := range []BlobStore{remote, local} {
		got, err := ReadAll(ctx, s, "r.json")
		require.NoError(t, err)
		assert.Equal(t, "{}", string(got))
	}

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"r.json"}, names)

	require.NoError(t, store.Delete(ctx, "r.json"))
	_, err = remote.Open(ctx, "r.json")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = local.Open(ctx, "r.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_Warm(t *testing.T) {
	ctx := context.Background()
	remote := &countingStore{BlobStore: NewMemoryStore()}
	names := []string{"a", "b", "c", "d"}
	for _, n := range names {
		require.NoError(t, remote.Put(ctx, n, []byte(n)))
	}

	local := NewMemoryStore()
	store := NewCachingStore(remote, local)
	require.NoError(t, store.Warm(ctx, names...))
	require.NoError(t, store.Warm(ctx, names...))
	assert.Equal(t, int64(len(names)), remote.opens.Load())

	cached, err := local.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, names, cached)

	err = store.Warm(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
