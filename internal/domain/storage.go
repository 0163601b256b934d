package domain

import "context"

// KeyValueStore is the durable medium the state layer mirrors itself into.
// Values are opaque JSON documents; Put fully overwrites prior contents at
// the key. Each implementation owns its own schema and migration strategy,
// ensuring the entire backend is swappable.
type KeyValueStore interface {
	// Get returns the stored value, or ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored at key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the key entirely. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
