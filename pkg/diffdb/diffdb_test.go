package diffdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	bdb, err := bbolt.Open(filepath.Join(t.TempDir(), "db.bolt"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, bdb.Close())
	})
	return &DB{DB: bdb}
}

func TestJobs(t *testing.T) {
	dt := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	j := Job{
		CreatedAt: dt,
		Sum:       "abcdef",
	}

	d := newDB(t)
	require.NoError(t, d.PutJob("hello", j))

	{
		res, err := d.GetJob("hello")
		assert.NoError(t, err)
		assert.Equal(t, j, res)
	}
	{
		has, err := d.HasJob("hello")
		assert.NoError(t, err)
		assert.True(t, has)
	}

	// getting a non-existent job returns no error and a zero value.
	{
		res, err := d.GetJob("nope")
		assert.NoError(t, err)
		assert.Equal(t, Job{}, res)
		assert.True(t, res.IsZero())
	}
	{
		has, err := d.HasJob("nope")
		assert.NoError(t, err)
		assert.False(t, has)
	}
}

func TestResults(t *testing.T) {
	d := newDB(t)

	got, err := d.GetResult("missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	payload := []byte(`[{"status":"equal","left_text":"a"}]`)
	require.NoError(t, d.PutResult("abc", payload))

	got, err = d.GetResult("abc")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
