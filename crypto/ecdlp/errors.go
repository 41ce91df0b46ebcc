package ecdlp

import "errors"

var (
	// ErrInvalidWidth indicates a table bit width that is odd, non-positive
	// or wider than MaxWidth.
	ErrInvalidWidth = errors.New("ecdlp: invalid table width")
	// ErrUnknownAlgorithm indicates a solver configuration naming no engine.
	ErrUnknownAlgorithm = errors.New("ecdlp: unknown solver algorithm")
	// ErrNotInitialized indicates a solve issued before the solver's tables
	// were ready.
	ErrNotInitialized = errors.New("ecdlp: solver not initialized")
	// ErrNotFound indicates a target outside every configured table's range,
	// which is also what a wrong decryption key looks like.
	ErrNotFound = errors.New("ecdlp: discrete log not found")
)
