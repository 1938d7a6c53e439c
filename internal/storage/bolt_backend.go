package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var _ Backend = (*BoltBackend)(nil)

var recordsBucket = []byte("records")

type BoltBackend struct {
	db *bbolt.DB
}

// NewBoltBackend opens (or creates) the bolt file at path. Bolt holds an
// exclusive file lock, so a bolt store serves a single process.
func NewBoltBackend(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Get(key string) ([]byte, bool, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(recordsBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// bolt values are only valid inside the transaction
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

func (b *BoltBackend) Set(key string, value []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(key), value)
	})
}

func (b *BoltBackend) Delete(key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(recordsBucket).Delete([]byte(key))
	})
}

func (b *BoltBackend) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(recordsBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
