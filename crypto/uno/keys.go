package uno

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v3"
)

// ScalarSize is the length of an encoded private key.
const ScalarSize = 32

// KeyPair is a twisted ElGamal key pair with Public = Private·G.
type KeyPair struct {
	Private kyber.Scalar
	Public  kyber.Point
}

// GenerateKeyPair draws a fresh non-zero private key from rand. A nil rand
// uses the suite's crypto/rand backed stream.
func GenerateKeyPair(rand cipher.Stream) *KeyPair {
	if rand == nil {
		rand = suite.RandomStream()
	}
	zero := suite.Scalar().Zero()
	for {
		priv := suite.Scalar().Pick(rand)
		if !priv.Equal(zero) {
			return keyPairFromScalar(priv)
		}
	}
}

// KeyPairFromPrivateBytes rebuilds a key pair from an encoded private key.
func KeyPairFromPrivateBytes(raw []byte) (*KeyPair, error) {
	if len(raw) != ScalarSize {
		return nil, ErrInvalidKey
	}
	priv := suite.Scalar()
	if err := priv.UnmarshalBinary(raw); err != nil {
		return nil, ErrInvalidKey
	}
	if priv.Equal(suite.Scalar().Zero()) {
		return nil, ErrInvalidKey
	}
	return keyPairFromScalar(priv), nil
}

// PublicKeyFromBytes decodes a compressed public key. Only non-identity
// elements of the prime-order subgroup are accepted.
func PublicKeyFromBytes(raw []byte) (kyber.Point, error) {
	pub, err := decodePoint(raw)
	if err != nil {
		return nil, ErrInvalidKey
	}
	if pub.Equal(suite.Point().Null()) {
		return nil, ErrInvalidKey
	}
	return pub, nil
}

// PrivateKeyBytes returns the encoded private key.
func (k *KeyPair) PrivateKeyBytes() [ScalarSize]byte {
	var out [ScalarSize]byte
	enc, _ := k.Private.MarshalBinary()
	copy(out[:], enc)
	return out
}

// PublicKeyBytes returns the compressed public key.
func (k *KeyPair) PublicKeyBytes() [PointSize]byte {
	var out [PointSize]byte
	enc, _ := k.Public.MarshalBinary()
	copy(out[:], enc)
	return out
}

func keyPairFromScalar(priv kyber.Scalar) *KeyPair {
	return &KeyPair{
		Private: priv,
		Public:  suite.Point().Mul(priv, G()),
	}
}
