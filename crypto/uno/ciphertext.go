package uno

import (
	"github.com/tos-network/unocrypto/crypto/ecdlp"
	"go.dedis.ch/kyber/v3"
)

// CiphertextSize is the length of an encoded ciphertext: commitment then handle.
const CiphertextSize = 2 * PointSize

// Ciphertext is a twisted ElGamal ciphertext. Commitment is x·H + r·P and
// Handle is r·G for plaintext x, opening r and public key P.
type Ciphertext struct {
	Commitment kyber.Point
	Handle     kyber.Point
}

// ZeroCiphertext returns the encryption of zero with a zero opening. It is the
// identity element of ciphertext addition.
func ZeroCiphertext() *Ciphertext {
	return &Ciphertext{
		Commitment: suite.Point().Null(),
		Handle:     suite.Point().Null(),
	}
}

// UnmarshalCiphertext decodes a 64-byte ciphertext.
func UnmarshalCiphertext(raw []byte) (*Ciphertext, error) {
	if len(raw) != CiphertextSize {
		return nil, ErrInvalidCiphertext
	}
	c, err := decodePoint(raw[:PointSize])
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	d, err := decodePoint(raw[PointSize:])
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	return &Ciphertext{Commitment: c, Handle: d}, nil
}

// MarshalBinary encodes the ciphertext as commitment || handle.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	c, err := ct.Commitment.MarshalBinary()
	if err != nil {
		return nil, err
	}
	d, err := ct.Handle.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, CiphertextSize)
	out = append(out, c...)
	return append(out, d...), nil
}

// Equal reports whether both components match.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return ct.Commitment.Equal(other.Commitment) && ct.Handle.Equal(other.Handle)
}

// Clone returns a deep copy.
func (ct *Ciphertext) Clone() *Ciphertext {
	return &Ciphertext{
		Commitment: ct.Commitment.Clone(),
		Handle:     ct.Handle.Clone(),
	}
}

// AddAmount returns a ciphertext whose plaintext is increased by amount. Only
// the commitment changes, so no public key is needed.
func (ct *Ciphertext) AddAmount(amount uint64) *Ciphertext {
	delta := suite.Point().Mul(ecdlp.ScalarFromUint64(suite, amount), H())
	return &Ciphertext{
		Commitment: suite.Point().Add(ct.Commitment, delta),
		Handle:     ct.Handle.Clone(),
	}
}

// SubAmount returns a ciphertext whose plaintext is decreased by amount.
func (ct *Ciphertext) SubAmount(amount uint64) *Ciphertext {
	delta := suite.Point().Mul(ecdlp.ScalarFromUint64(suite, amount), H())
	return &Ciphertext{
		Commitment: suite.Point().Sub(ct.Commitment, delta),
		Handle:     ct.Handle.Clone(),
	}
}

// AddCiphertexts adds two ciphertexts component-wise. The result decrypts to
// the sum of the plaintexts under the shared key.
func AddCiphertexts(a, b *Ciphertext) *Ciphertext {
	return &Ciphertext{
		Commitment: suite.Point().Add(a.Commitment, b.Commitment),
		Handle:     suite.Point().Add(a.Handle, b.Handle),
	}
}

// SubCiphertexts subtracts b from a component-wise.
func SubCiphertexts(a, b *Ciphertext) *Ciphertext {
	return &Ciphertext{
		Commitment: suite.Point().Sub(a.Commitment, b.Commitment),
		Handle:     suite.Point().Sub(a.Handle, b.Handle),
	}
}
