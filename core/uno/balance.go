package uno

import (
	"fmt"

	"github.com/holiman/uint256"
	cryptouno "github.com/tos-network/unocrypto/crypto/uno"
	"go.dedis.ch/kyber/v3"
	"golang.org/x/sync/errgroup"
)

// Balance is an encrypted wide value: one ciphertext per chunk, lowest
// weight first.
type Balance struct {
	Chunks []*cryptouno.Ciphertext
}

// ZeroBalance returns the identity balance for params.
func ZeroBalance(params ChunkParams) *Balance {
	b := &Balance{Chunks: make([]*cryptouno.Ciphertext, params.Chunks())}
	for i := range b.Chunks {
		b.Chunks[i] = cryptouno.ZeroCiphertext()
	}
	return b
}

// EncryptBalance decomposes v under params and encrypts every chunk to pub
// with an independent opening.
func EncryptBalance(c *cryptouno.Cipher, params ChunkParams, v *uint256.Int, pub kyber.Point) (*Balance, error) {
	chunks, err := params.Decompose(v)
	if err != nil {
		return nil, err
	}
	b := &Balance{Chunks: make([]*cryptouno.Ciphertext, len(chunks))}
	for i, x := range chunks {
		ct, err := c.Encrypt(pub, x)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		b.Chunks[i] = ct
	}
	return b, nil
}

// DecryptBalance decrypts every chunk concurrently and recombines them. A
// chunk that outgrew params.ChunkBits is a range error; NormalizeBalance
// repairs such balances.
func DecryptBalance(c *cryptouno.Cipher, params ChunkParams, b *Balance, kp *cryptouno.KeyPair) (*uint256.Int, error) {
	chunks, err := decryptChunks(c, params, b, kp)
	if err != nil {
		return nil, err
	}
	return params.Recompose(chunks)
}

func decryptChunks(c *cryptouno.Cipher, params ChunkParams, b *Balance, kp *cryptouno.KeyPair) ([]uint64, error) {
	if len(b.Chunks) != params.Chunks() {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrChunkCountMismatch, len(b.Chunks), params.Chunks())
	}
	chunks := make([]uint64, len(b.Chunks))

	var g errgroup.Group
	for i, ct := range b.Chunks {
		i, ct := i, ct
		g.Go(func() error {
			x, err := c.Decrypt(ct, kp)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			chunks[i] = x
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// AddBalances adds two balances chunk by chunk. The sum decrypts to a + b as
// long as no chunk outgrows the solver's tables.
func AddBalances(a, b *Balance) (*Balance, error) {
	if len(a.Chunks) != len(b.Chunks) {
		return nil, fmt.Errorf("%w: %d and %d", ErrChunkCountMismatch, len(a.Chunks), len(b.Chunks))
	}
	out := &Balance{Chunks: make([]*cryptouno.Ciphertext, len(a.Chunks))}
	for i := range a.Chunks {
		out.Chunks[i] = cryptouno.AddCiphertexts(a.Chunks[i], b.Chunks[i])
	}
	return out, nil
}

// NormalizeBalance decrypts b, accepting chunks that outgrew
// params.ChunkBits through homomorphic additions, and encrypts the value again
// from a fresh decomposition with new openings.
func NormalizeBalance(c *cryptouno.Cipher, params ChunkParams, b *Balance, kp *cryptouno.KeyPair) (*Balance, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	chunks, err := decryptChunks(c, params, b, kp)
	if err != nil {
		return nil, err
	}
	v, err := Recompose(chunks, params.RadixBits)
	if err != nil {
		return nil, err
	}
	return EncryptBalance(c, params, v, kp.Public)
}

// MarshalBinary concatenates the encoded chunk ciphertexts.
func (b *Balance) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, len(b.Chunks)*cryptouno.CiphertextSize)
	for _, ct := range b.Chunks {
		enc, err := ct.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

// UnmarshalBalance decodes a balance of params.Chunks() ciphertexts.
func UnmarshalBalance(params ChunkParams, raw []byte) (*Balance, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	n := params.Chunks()
	if len(raw) != n*cryptouno.CiphertextSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidBalance, len(raw), n*cryptouno.CiphertextSize)
	}
	b := &Balance{Chunks: make([]*cryptouno.Ciphertext, n)}
	for i := range b.Chunks {
		off := i * cryptouno.CiphertextSize
		ct, err := cryptouno.UnmarshalCiphertext(raw[off : off+cryptouno.CiphertextSize])
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d: %v", ErrInvalidBalance, i, err)
		}
		b.Chunks[i] = ct
	}
	return b, nil
}
