// Package file provides a JSON-file-backed kv.Store, the desktop analog of a
// browser's localStorage: a single flat object of string keys and values kept
// in the user's config directory.
//
// Writes go through a temp file and an atomic rename, so a crash mid-write
// leaves the previous state intact rather than a half-written file. The file
// is created with 0600 permissions because it holds the bearer token.
//
//	store, err := file.New(filepath.Join(configDir, "habitctl", "state.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
package file
