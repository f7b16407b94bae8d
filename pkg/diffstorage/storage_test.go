package diffstorage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newDBStorageForTest(t *testing.T) *dbStorage {
	t.Helper()
	bdb, err := bbolt.Open(filepath.Join(t.TempDir(), "storage.bolt"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, bdb.Close())
	})
	s := NewDBStorage(bdb, []byte("documents"))
	return s.(*dbStorage)
}

func TestDBStoragePutGetDel(t *testing.T) {
	ctx := context.Background()
	s := newDBStorageForTest(t)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "a", []byte("hello")))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	require.NoError(t, s.Del(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBStorageList(t *testing.T) {
	ctx := context.Background()
	s := newDBStorageForTest(t)

	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	require.NoError(t, s.Put(ctx, "b", []byte("2")))

	seen := map[string]string{}
	err := s.List(ctx, func(id string, b []byte) error {
		seen[id] = string(b)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, seen)
}

func TestCachedStorageWritesThroughToCache(t *testing.T) {
	ctx := context.Background()
	cacheBolt, err := bbolt.Open(filepath.Join(t.TempDir(), "cache.bolt"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, cacheBolt.Close()) })
	permBolt, err := bbolt.Open(filepath.Join(t.TempDir(), "perm.bolt"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, permBolt.Close()) })

	cache := NewDBStorage(cacheBolt, []byte("cache")).(ListStorage)
	perm := NewDBStorage(permBolt, []byte("perm"))

	cs, err := NewCachedStorage(cache, perm, 1<<20)
	require.NoError(t, err)

	require.NoError(t, cs.Put(ctx, "doc", []byte("left\x00right")))

	got, err := cs.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("left\x00right"), got)

	// confirm the cache backend now independently holds the object.
	time.Sleep(10 * time.Millisecond)
	cached, err := cache.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("left\x00right"), cached)

	require.NoError(t, cs.Del(ctx, "doc"))
	_, err = cs.Get(ctx, "doc")
	assert.ErrorIs(t, err, ErrNotFound)
}
