package kv

import "errors"

var (
	// ErrKeyNotFound is returned by Get when the key has no stored value.
	ErrKeyNotFound = errors.New("key not found")
	// ErrStoreClosed is returned when an operation is attempted on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)
