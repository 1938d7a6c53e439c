// Package repository exposes one CRUD facade per entity kind on top of the
// record store. Every mutation is a whole-collection read-modify-write.
package repository

import (
	"elevate/internal/models"
	"elevate/internal/storage"
	"fmt"
)

type Order int

const (
	// Prepend puts new records first (feeds).
	Prepend Order = iota
	// Append keeps insertion order (catalogs).
	Append
)

// Config describes how one entity kind is stored and keyed.
type Config[T any] struct {
	Key    string
	Prefix string
	// KeyOf returns the upsert key: the id, or a natural key such as
	// userName.
	KeyOf func(T) string
	// SetID assigns a generated id. Nil for naturally keyed entities.
	SetID func(*T, string)
	Order Order
	// Seed provides the defaults written on the first read of an empty
	// collection.
	Seed func() []T
}

type Repository[T any] struct {
	store *storage.RecordStore
	cfg   Config[T]
}

func New[T any](store *storage.RecordStore, cfg Config[T]) *Repository[T] {
	return &Repository[T]{store: store, cfg: cfg}
}

func (r *Repository[T]) StorageKey() string {
	return r.cfg.Key
}

func empty[T any]() []T {
	return []T{}
}

func (r *Repository[T]) all() []T {
	records := storage.ReadCollection(r.store, r.cfg.Key, empty[T]())
	if len(records) > 0 || r.cfg.Seed == nil {
		return records
	}

	var seeded []T
	_, _ = storage.MutateCollection(r.store, r.cfg.Key, empty[T], func(current []T) ([]T, bool) {
		if len(current) > 0 {
			seeded = current
			return current, false
		}
		seeded = r.cfg.Seed()
		return seeded, true
	})
	return seeded
}

// List returns the records passing every filter, in stored order.
func (r *Repository[T]) List(filters ...func(T) bool) []T {
	records := r.all()
	if len(filters) == 0 {
		return records
	}
	out := make([]T, 0, len(records))
next:
	for _, rec := range records {
		for _, keep := range filters {
			if !keep(rec) {
				continue next
			}
		}
		out = append(out, rec)
	}
	return out
}

func (r *Repository[T]) Get(key string) (T, bool) {
	for _, rec := range r.all() {
		if r.cfg.KeyOf(rec) == key {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

func (r *Repository[T]) Count() int {
	return len(r.all())
}

// Insert assigns a fresh id (when the kind has one) and stores the record.
func (r *Repository[T]) Insert(record T) (T, error) {
	_, err := r.Modify(func(current []T) ([]T, bool) {
		current, record = r.add(current, record)
		return current, true
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// add assigns a fresh id to record and places it according to the order.
func (r *Repository[T]) add(current []T, record T) ([]T, T) {
	if r.cfg.SetID != nil {
		r.cfg.SetID(&record, NewID(r.cfg.Prefix))
	}
	if r.cfg.Order == Append {
		return append(current, record), record
	}
	return append([]T{record}, current...), record
}

// Update patches the record with the given key in place. An unknown key is
// a no-op reported as false.
func (r *Repository[T]) Update(key string, patch func(*T)) (bool, error) {
	return r.Modify(func(current []T) ([]T, bool) {
		for i := range current {
			if r.cfg.KeyOf(current[i]) == key {
				patch(&current[i])
				return current, true
			}
		}
		return current, false
	})
}

// Upsert replaces the record sharing the key of record, or appends it.
// A record without a key is rejected; new records go through Insert.
func (r *Repository[T]) Upsert(record T) (T, error) {
	key := r.cfg.KeyOf(record)
	if key == "" {
		var zero T
		return zero, fmt.Errorf("%s: %w: upsert needs a key", r.cfg.Key, models.ErrInvalidRecord)
	}
	_, err := r.Modify(func(current []T) ([]T, bool) {
		for i := range current {
			if r.cfg.KeyOf(current[i]) == key {
				current[i] = record
				return current, true
			}
		}
		return append(current, record), true
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Remove drops the record with the given key. An unknown key is a no-op
// reported as false.
func (r *Repository[T]) Remove(key string) (bool, error) {
	return r.Modify(func(current []T) ([]T, bool) {
		for i := range current {
			if r.cfg.KeyOf(current[i]) == key {
				return append(current[:i], current[i+1:]...), true
			}
		}
		return current, false
	})
}

// Replace overwrites the whole collection. Every record must carry its key.
func (r *Repository[T]) Replace(records []T) error {
	for i, record := range records {
		if r.cfg.KeyOf(record) == "" {
			return fmt.Errorf("%s: %w: record %d has no key", r.cfg.Key, models.ErrInvalidRecord, i)
		}
	}
	return storage.WriteCollection(r.store, r.cfg.Key, records)
}

// Modify runs fn as a serialised read-modify-write of the collection.
func (r *Repository[T]) Modify(fn func([]T) ([]T, bool)) (bool, error) {
	fallback := empty[T]
	if r.cfg.Seed != nil {
		fallback = r.cfg.Seed
	}
	return storage.MutateCollection(r.store, r.cfg.Key, fallback, fn)
}
