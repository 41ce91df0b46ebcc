package uno

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/holiman/uint256"
)

// ChunkParams fixes how wide values are split into chunks. The range-proof
// system must use the very same parameters, bit for bit.
type ChunkParams struct {
	RadixBits int `toml:",omitempty"` // Positional weight of chunk i is 2^(i·RadixBits)
	MaxBits   int `toml:",omitempty"` // Values must be below 2^MaxBits
	ChunkBits int `toml:",omitempty"` // Every chunk must be below 2^ChunkBits
}

// Validate reports configuration errors.
func (p ChunkParams) Validate() error {
	switch {
	case p.RadixBits <= 0:
		return fmt.Errorf("%w: radix bits %d", ErrInvalidChunkParams, p.RadixBits)
	case p.MaxBits <= 0:
		return fmt.Errorf("%w: max bits %d", ErrInvalidChunkParams, p.MaxBits)
	case p.ChunkBits <= 0:
		return fmt.Errorf("%w: chunk bits %d", ErrInvalidChunkParams, p.ChunkBits)
	case p.MaxBits%p.RadixBits != 0:
		return fmt.Errorf("%w: max bits %d not a multiple of radix bits %d", ErrInvalidChunkParams, p.MaxBits, p.RadixBits)
	case p.ChunkBits < p.RadixBits:
		return fmt.Errorf("%w: chunk bits %d below radix bits %d", ErrInvalidChunkParams, p.ChunkBits, p.RadixBits)
	case p.MaxBits > 256:
		return fmt.Errorf("%w: max bits %d above 256", ErrInvalidChunkParams, p.MaxBits)
	case p.RadixBits >= 64:
		return fmt.Errorf("%w: radix bits %d not below 64", ErrInvalidChunkParams, p.RadixBits)
	case p.ChunkBits > 64:
		return fmt.Errorf("%w: chunk bits %d above 64", ErrInvalidChunkParams, p.ChunkBits)
	}
	return nil
}

// Chunks returns the number of chunks, MaxBits/RadixBits.
func (p ChunkParams) Chunks() int {
	return p.MaxBits / p.RadixBits
}

// chunkLimit returns 2^ChunkBits - 1, the largest value a chunk may hold.
func (p ChunkParams) chunkLimit() uint64 {
	if p.ChunkBits == 64 {
		return math.MaxUint64
	}
	return uint64(1)<<uint(p.ChunkBits) - 1
}

// Decompose splits v into Chunks() values with Σ chunk[i]·2^(i·RadixBits) = v.
// Starting from the canonical base-2^RadixBits digits, it moves as much
// magnitude as fits from each chunk into the one below, so the high chunks
// are zero as often as possible.
func (p ChunkParams) Decompose(v *uint256.Int) ([]uint64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if v.BitLen() > p.MaxBits {
		return nil, fmt.Errorf("%w: %s needs %d bits, max %d", ErrValueOutOfRange, v.Dec(), v.BitLen(), p.MaxBits)
	}
	var (
		ell   = p.Chunks()
		radix = uint64(1) << uint(p.RadixBits)
		mask  = radix - 1
		limit = p.chunkLimit()
		w     = make([]uint64, ell)
		shift = new(uint256.Int)
	)
	for i := range w {
		shift.Rsh(v, uint(i*p.RadixBits))
		w[i] = shift.Uint64() & mask
	}
	// Borrow from the next chunk until no adjacent pair changes. Every
	// effective move shifts weight downward, so the loop terminates.
	for changed := true; changed; {
		changed = false
		for i := 0; i+1 < ell; i++ {
			room := limit - w[i]
			if room < radix {
				continue
			}
			t := room / radix
			if w[i+1] < t {
				t = w[i+1]
			}
			if t > 0 {
				w[i] += t * radix
				w[i+1] -= t
				changed = true
			}
		}
	}
	return w, nil
}

// DecomposeBig is Decompose for arbitrary precision input. Negative values and
// values of 2^MaxBits or more are range errors.
func (p ChunkParams) DecomposeBig(v *big.Int) ([]uint64, error) {
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", ErrValueOutOfRange, v)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%w: %s exceeds 256 bits", ErrValueOutOfRange, v)
	}
	return p.Decompose(u)
}

// Recompose returns Σ chunks[i]·2^(i·radixBits).
func Recompose(chunks []uint64, radixBits int) (*uint256.Int, error) {
	if radixBits <= 0 || radixBits >= 64 {
		return nil, fmt.Errorf("%w: radix bits %d", ErrInvalidChunkParams, radixBits)
	}
	var (
		sum  = new(uint256.Int)
		term = new(uint256.Int)
	)
	for i, c := range chunks {
		if c == 0 {
			continue
		}
		shift := i * radixBits
		if shift+bits.Len64(c) > 256 {
			return nil, fmt.Errorf("%w: chunk %d overflows 256 bits", ErrValueOutOfRange, i)
		}
		term.SetUint64(c)
		term.Lsh(term, uint(shift))
		if _, overflow := sum.AddOverflow(sum, term); overflow {
			return nil, fmt.Errorf("%w: sum overflows 256 bits", ErrValueOutOfRange)
		}
	}
	return sum, nil
}

// Recompose is the inverse of Decompose under these parameters. It also
// checks the chunk count and every chunk's bound.
func (p ChunkParams) Recompose(chunks []uint64) (*uint256.Int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(chunks) != p.Chunks() {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrChunkCountMismatch, len(chunks), p.Chunks())
	}
	limit := p.chunkLimit()
	for i, c := range chunks {
		if c > limit {
			return nil, fmt.Errorf("%w: chunk %d exceeds %d bits", ErrValueOutOfRange, i, p.ChunkBits)
		}
	}
	return Recompose(chunks, p.RadixBits)
}

// IsLocallyMaximal reports whether no chunk can borrow from its successor:
// each chunk but the last is saturated or followed by a zero chunk.
func (p ChunkParams) IsLocallyMaximal(chunks []uint64) bool {
	radix := uint64(1) << uint(p.RadixBits)
	limit := p.chunkLimit()
	for i := 0; i+1 < len(chunks); i++ {
		if chunks[i] > limit {
			return false
		}
		saturated := limit-chunks[i] < radix
		if !saturated && chunks[i+1] != 0 {
			return false
		}
	}
	return true
}
