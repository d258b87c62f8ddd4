package resolver

import "errors"

var (
	// ErrInvalidRange reports a malformed or backwards initial range,
	// detected before any I/O happens.
	ErrInvalidRange = errors.New("invalid initial range")

	// ErrNotFound reports an identity absent from both the cache and
	// the live site. It marks one identity unresolved, not the batch.
	ErrNotFound = errors.New("player not found")

	// ErrStoreRequired reports an operation that only makes sense
	// against a configured store (backfill).
	ErrStoreRequired = errors.New("operation requires a configured store")
)
