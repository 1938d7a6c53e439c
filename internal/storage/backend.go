// Package storage holds the durable record store: whole JSON collections
// persisted under fixed string keys in a pluggable key-value backend.
package storage

import (
	"errors"

	json "github.com/goccy/go-json"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend is the synchronous key-value primitive behind the record store.
// Get reports a missing key with ok=false and a nil error.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Snapshotter is implemented by backends whose whole state can be exported
// and re-imported by the snapshot file manager.
type Snapshotter interface {
	Snapshot() map[string]json.RawMessage
	Restore(data map[string]json.RawMessage)
}
