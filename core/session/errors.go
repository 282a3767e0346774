package session

import "errors"

var (
	// ErrMissingStorage is returned by New when no kv store is provided.
	ErrMissingStorage = errors.New("kv store is required")
	// ErrMissingAuthenticator is returned by New when no authenticator is provided.
	ErrMissingAuthenticator = errors.New("authenticator is required")
	// ErrLoginSuperseded is returned when a login response arrives after a newer
	// login, logout, or invalidation; the stale result is discarded.
	ErrLoginSuperseded = errors.New("login superseded by a newer attempt")
	// ErrPersistSession is returned when the session was established in memory
	// but writing it to persisted storage failed.
	ErrPersistSession = errors.New("failed to persist session")
)
