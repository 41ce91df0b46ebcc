package uno

import (
	"crypto/cipher"
	"fmt"

	"github.com/tos-network/unocrypto/crypto/ecdlp"
	"go.dedis.ch/kyber/v3"
)

// DefaultMaxBits bounds plaintexts of an encrypt-only cipher when no
// WithMaxBits option is given.
const DefaultMaxBits = 64

// Cipher encrypts amounts under twisted ElGamal and decrypts them through a
// bounded discrete log solver over H.
type Cipher struct {
	solver  ecdlp.Solver
	rand    cipher.Stream
	maxBits int
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithMaxBits rejects plaintexts of more than bits bits at encryption time.
// A cipher with a solver is further bounded by the solver's widest table.
func WithMaxBits(bits int) Option {
	return func(c *Cipher) {
		c.maxBits = bits
	}
}

// WithRandom replaces the randomness source used for openings.
func WithRandom(rand cipher.Stream) Option {
	return func(c *Cipher) {
		c.rand = rand
	}
}

// NewCipher returns a cipher decrypting through solver. The solver must be
// built over H. A nil solver yields an encrypt-only cipher; otherwise only
// amounts the solver can recover are encrypted, so encryption fails with
// ecdlp.ErrNotInitialized until the solver is initialized.
func NewCipher(solver ecdlp.Solver, opts ...Option) *Cipher {
	c := &Cipher{
		solver:  solver,
		maxBits: DefaultMaxBits,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rand == nil {
		c.rand = suite.RandomStream()
	}
	if c.maxBits <= 0 || c.maxBits > 64 {
		c.maxBits = DefaultMaxBits
	}
	return c
}

// NewSolver builds a solver over H for this suite, as selected by cfg.
func NewSolver(cfg ecdlp.Config, store *ecdlp.TableStore) (ecdlp.Solver, error) {
	return ecdlp.New(cfg, suite, H(), store)
}

// Solver returns the configured discrete log solver.
func (c *Cipher) Solver() ecdlp.Solver {
	return c.solver
}

// MaxBits returns b such that Encrypt accepts exactly the amounts below 2^b.
// With a solver this is at most the solver's width, zero before it is
// initialized.
func (c *Cipher) MaxBits() int {
	bits := c.maxBits
	if c.solver != nil {
		if w := c.solver.Width(); w < bits {
			bits = w
		}
	}
	return bits
}

// GenerateOpening draws a fresh random opening.
func (c *Cipher) GenerateOpening() kyber.Scalar {
	return suite.Scalar().Pick(c.rand)
}

// Encrypt encrypts amount under pub with a fresh opening.
func (c *Cipher) Encrypt(pub kyber.Point, amount uint64) (*Ciphertext, error) {
	ct, _, err := c.EncryptWithGeneratedOpening(pub, amount)
	return ct, err
}

// EncryptWithGeneratedOpening encrypts amount and also returns the opening,
// which range and equality proofs need.
func (c *Cipher) EncryptWithGeneratedOpening(pub kyber.Point, amount uint64) (*Ciphertext, kyber.Scalar, error) {
	if err := c.checkAmount(amount); err != nil {
		return nil, nil, err
	}
	r := c.GenerateOpening()
	return EncryptWithOpening(pub, amount, r), r, nil
}

// EncryptWithOpening deterministically encrypts amount using opening r.
func EncryptWithOpening(pub kyber.Point, amount uint64, r kyber.Scalar) *Ciphertext {
	x := ecdlp.ScalarFromUint64(suite, amount)
	commitment := suite.Point().Mul(x, H())
	commitment.Add(commitment, suite.Point().Mul(r, pub))
	return &Ciphertext{
		Commitment: commitment,
		Handle:     suite.Point().Mul(r, G()),
	}
}

// DecryptToPoint strips the blinding from ct, returning amount·H.
func DecryptToPoint(ct *Ciphertext, priv kyber.Scalar) kyber.Point {
	blind := suite.Point().Mul(priv, ct.Handle)
	return suite.Point().Sub(ct.Commitment, blind)
}

// Decrypt recovers the amount of ct. It fails with ecdlp.ErrNotFound when the
// key is wrong or the amount lies outside every configured table.
func (c *Cipher) Decrypt(ct *Ciphertext, kp *KeyPair) (uint64, error) {
	if c.solver == nil {
		return 0, ErrNoSolver
	}
	amount, err := c.solver.Solve(DecryptToPoint(ct, kp.Private))
	if err != nil {
		return 0, fmt.Errorf("decrypt: %w", err)
	}
	return amount, nil
}

func (c *Cipher) checkAmount(amount uint64) error {
	bits := c.MaxBits()
	if bits == 0 {
		return fmt.Errorf("encrypt: %w", ecdlp.ErrNotInitialized)
	}
	if bits < 64 && amount>>uint(bits) != 0 {
		return fmt.Errorf("%w: %d needs more than %d bits", ErrAmountOutOfRange, amount, bits)
	}
	return nil
}
