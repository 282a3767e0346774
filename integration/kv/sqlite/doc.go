// Package sqlite provides a SQLite-backed kv.Store using the pure-Go
// modernc.org/sqlite driver, so client binaries stay CGO-free.
//
// The schema is managed by embedded goose migrations applied automatically on
// open. SQLite buys durability across crashes (WAL journal) and safe access
// when several processes on the same device share one state database.
//
//	store, err := sqlite.New(filepath.Join(configDir, "habitctl", "state.db"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
package sqlite
