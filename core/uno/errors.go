package uno

import "errors"

var (
	// ErrInvalidChunkParams indicates an inconsistent chunk configuration.
	ErrInvalidChunkParams = errors.New("uno: invalid chunk parameters")

	// ErrValueOutOfRange indicates a value or chunk wider than its declared bits.
	ErrValueOutOfRange = errors.New("uno: value out of range")

	// ErrChunkCountMismatch indicates a chunk vector of the wrong length.
	ErrChunkCountMismatch = errors.New("uno: chunk count mismatch")

	// ErrInvalidBalance indicates malformed encrypted balance bytes.
	ErrInvalidBalance = errors.New("uno: invalid encrypted balance")
)
