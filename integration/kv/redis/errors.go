package redis

import "errors"

var (
	// ErrFailedToParseConnString is returned when the connection URL is malformed.
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	// ErrNotReady is returned when redis does not answer the startup ping.
	ErrNotReady = errors.New("redis did not become ready")
	// ErrEmptyConnectionURL is returned when no connection URL is provided.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
)
