package uno

import (
	"errors"
	"sync"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	"golang.org/x/crypto/sha3"
)

// PointSize is the length of a compressed group element.
const PointSize = 32

// blindingDomain separates the H derivation from any other use of G's encoding.
const blindingDomain = "unocrypto/twisted-elgamal/H"

var suite = edwards25519.NewBlakeSHA256Ed25519()

var (
	blindingOnce sync.Once
	blindingBase kyber.Point
	blindingErr  error
)

// Suite returns the group suite all UNO points and scalars live in.
func Suite() *edwards25519.SuiteEd25519 {
	return suite
}

// G returns a copy of the primary generator.
func G() kyber.Point {
	return suite.Point().Base()
}

// H returns a copy of the secondary generator. It is derived from G by
// hashing, so its discrete log relative to G is unknown.
func H() kyber.Point {
	blindingOnce.Do(func() {
		gEnc, err := suite.Point().Base().MarshalBinary()
		if err != nil {
			blindingErr = err
			return
		}
		h := sha3.New512()
		h.Write([]byte(blindingDomain))
		h.Write(gEnc)
		seed := h.Sum(nil)

		point := suite.Point().Pick(suite.XOF(seed))
		if point.Equal(suite.Point().Null()) {
			blindingErr = errors.New("uno: derived blinding base is the identity")
			return
		}
		blindingBase = point
	})
	if blindingErr != nil {
		// The derivation is deterministic; a failure here is a broken build.
		panic(blindingErr)
	}
	return blindingBase.Clone()
}

// HCompressed returns the encoding of H.
func HCompressed() [PointSize]byte {
	var out [PointSize]byte
	enc, _ := H().MarshalBinary()
	copy(out[:], enc)
	return out
}

// canonicalChecker is implemented by points whose encoding admits
// non-reduced field elements.
type canonicalChecker interface {
	IsCanonical(b []byte) bool
}

// decodePoint accepts only canonical encodings of prime-order subgroup
// elements. The curve has cofactor 8, so an on-curve check alone lets small
// and mixed order points through.
func decodePoint(raw []byte) (kyber.Point, error) {
	if len(raw) != PointSize {
		return nil, ErrInvalidPoint
	}
	p := suite.Point()
	if c, ok := p.(canonicalChecker); ok && !c.IsCanonical(raw) {
		return nil, ErrInvalidPoint
	}
	if err := p.UnmarshalBinary(raw); err != nil {
		return nil, ErrInvalidPoint
	}
	if !inPrimeOrderSubgroup(p) {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

// inPrimeOrderSubgroup reports whether l·p is the identity, computed as
// (l-1)·p + p since l itself reduces to zero in the scalar field.
func inPrimeOrderSubgroup(p kyber.Point) bool {
	q := suite.Point().Mul(suite.Scalar().SetInt64(-1), p)
	q.Add(q, p)
	return q.Equal(suite.Point().Null())
}
