// Package diffdb is a thin bolt wrapper centralizing the functions that
// interact with the database: content-addressed dedup of submitted
// document pairs, and caching of the serialized wire-schema diff
// result computed for them.
package diffdb

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

// DB wraps a Bolt database, initializing its buckets on first use.
type DB struct {
	DB *bbolt.DB

	err  error
	once sync.Once
}

func (d *DB) init() error {
	d.once.Do(d._init)
	return d.err
}

var (
	bDocuments = []byte("documents")
	bResults   = []byte("results")

	buckets = [...][]byte{
		bDocuments,
		bResults,
	}
)

func (d *DB) _init() {
	err := d.DB.Update(func(tx *bbolt.Tx) error {
		for _, buck := range buckets {
			_, err := tx.CreateBucketIfNotExists(buck)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		d.err = fmt.Errorf("initialization error: %w", err)
	}
}

// Job
// -----------------------------------------------------------------------------

// Job represents a submitted document pair, keyed by its content hash.
type Job struct {
	CreatedAt time.Time `json:"created_at"`
	Sum       string    `json:"sum"`
}

func (j Job) IsZero() bool {
	return j.Sum == ""
}

func (d *DB) HasJob(id string) (bool, error) {
	if err := d.init(); err != nil {
		return false, err
	}

	var has bool
	err := d.DB.View(func(tx *bbolt.Tx) error {
		has = tx.Bucket(bDocuments).Get([]byte(id)) != nil
		return nil
	})
	return has, err
}

func (d *DB) PutJob(id string, j Job) error {
	if err := d.init(); err != nil {
		return err
	}

	encoded, err := json.Marshal(j)
	if err != nil {
		return err
	}

	return d.DB.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(bDocuments).Put([]byte(id), encoded)
	})
}

func (d *DB) GetJob(id string) (Job, error) {
	if err := d.init(); err != nil {
		return Job{}, err
	}

	var buf []byte
	err := d.DB.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bDocuments).Get([]byte(id))
		buf = append(buf, data...)
		return nil
	})
	if err != nil || len(buf) == 0 {
		return Job{}, err
	}

	var j Job
	err = json.Unmarshal(buf, &j)
	return j, err
}

// Result
// -----------------------------------------------------------------------------

// PutResult caches the already-JSON-encoded wire schema result for id,
// so GET /{id} can re-serve it without recomputing the diff.
func (d *DB) PutResult(id string, encoded []byte) error {
	if err := d.init(); err != nil {
		return err
	}
	return d.DB.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(bResults).Put([]byte(id), encoded)
	})
}

// GetResult returns the cached wire schema bytes for id, or nil if
// absent.
func (d *DB) GetResult(id string) ([]byte, error) {
	if err := d.init(); err != nil {
		return nil, err
	}
	var buf []byte
	err := d.DB.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bResults).Get([]byte(id))
		buf = append(buf, data...)
		return nil
	})
	return buf, err
}
