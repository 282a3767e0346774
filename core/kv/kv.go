package kv

import "context"

// Store is the persistence contract for device-local key-value state.
// Implementations must be safe for concurrent use and must return
// ErrKeyNotFound from Get for absent keys. Delete of an absent key is not an
// error; both the session store and the transport layer clear keys
// best-effort and must not fail on an already-clean store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
