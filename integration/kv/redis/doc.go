// Package redis provides a Redis-backed kv.Store. It exists for environments
// where "device-local" means a shared sandbox rather than a laptop: CI jobs,
// integration test rigs, and remote development boxes that want session state
// to survive the process without touching the filesystem.
//
// Connection establishment validates the URL, connects, and verifies
// connectivity with a ping before returning, so a misconfigured store fails
// at startup instead of on the first session operation. Keys are namespaced
// with an optional prefix to keep several clients apart on one instance.
//
//	store, err := redis.New(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		KeyPrefix:     "habitctl",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
package redis
