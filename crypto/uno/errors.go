package uno

import "errors"

var (
	// ErrInvalidPoint indicates bytes that do not decode to a group element.
	ErrInvalidPoint = errors.New("uno crypto: invalid point encoding")
	// ErrInvalidCiphertext indicates a malformed 64-byte ciphertext.
	ErrInvalidCiphertext = errors.New("uno crypto: invalid ciphertext")
	// ErrInvalidKey indicates a malformed or zero private key.
	ErrInvalidKey = errors.New("uno crypto: invalid key")
	// ErrAmountOutOfRange indicates a plaintext wider than the cipher accepts.
	ErrAmountOutOfRange = errors.New("uno crypto: amount out of range")
	// ErrNoSolver indicates a decrypt on a cipher built without a solver.
	ErrNoSolver = errors.New("uno crypto: no discrete log solver configured")
)
