// Package errors defines all exported error sentinels for the exthash library.
//
// This is the single source of truth for error values. Both the top-level
// exthash package and its internal packages import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Construction errors
var (
	ErrInvalidCapacity   = errors.New("exthash: bucket capacity must be at least 1")
	ErrInvalidDepthLimit = errors.New("exthash: depth limit must be in [1, 64]")
)

// Operation errors
var (
	ErrInvalidSlot       = errors.New("exthash: directory slot index out of range")
	ErrCapacityExhausted = errors.New("exthash: keys indistinguishable within the hash width - cannot split further")
)
