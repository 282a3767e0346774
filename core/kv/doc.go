// Package kv defines the device-local key-value store contract used to persist
// session state between application runs.
//
// The interface is deliberately small: flat string keys, string values, and a
// sentinel ErrKeyNotFound for absent entries. The session store writes the
// "token" and "user" keys through it, and the gateway client reads the token
// back fresh on every request, so a logout or re-login between calls is always
// respected.
//
// The package ships an in-memory implementation suitable for tests and
// ephemeral sessions. Durable backends live under integration/kv: a JSON file
// store, a SQLite store, and a Redis store.
//
// Basic usage:
//
//	store := kv.NewMemory()
//	if err := store.Set(ctx, "token", "t1"); err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := store.Get(ctx, "token")
//	if errors.Is(err, kv.ErrKeyNotFound) {
//		// anonymous
//	}
package kv
