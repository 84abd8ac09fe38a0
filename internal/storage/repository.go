package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KV is a small key/value store. Get and Delete return ErrNotFound for
// unknown keys; List returns entries sorted by key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Entry, error)
}

// Purge deletes every entry whose key starts with prefix and returns what was
// removed.
func Purge(ctx context.Context, kv KV, prefix string) ([]Entry, error) {
	entries, err := kv.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	removed := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if err := kv.Delete(ctx, e.Key); err != nil && !errors.Is(err, ErrNotFound) {
			return removed, err
		}
		removed = append(removed, e)
	}
	return removed, nil
}

// Slot binds one fixed key of a KV backend. It satisfies store.Persister:
// an absent key reads as empty content.
type Slot struct {
	KV  KV
	Key string
}

func (s Slot) Read(ctx context.Context) ([]byte, error) {
	raw, err := s.KV.Get(ctx, s.Key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s Slot) Write(ctx context.Context, data []byte) error {
	return s.KV.Put(ctx, s.Key, data)
}
