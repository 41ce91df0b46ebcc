package uno

import (
	"errors"
	"math/big"
	"math/rand"
	"reflect"
	"testing"

	"github.com/holiman/uint256"
)

func mustDecimal(t *testing.T, s string) *uint256.Int {
	t.Helper()
	v, err := uint256.FromDecimal(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return v
}

func TestDecomposeVectors(t *testing.T) {
	max128 := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	tests := []struct {
		name   string
		params ChunkParams
		value  *uint256.Int
		want   []uint64
	}{
		{"zero", BalanceChunkParams, uint256.NewInt(0), make([]uint64, 8)},
		{"small", BalanceChunkParams, uint256.NewInt(12345), []uint64{12345, 0, 0, 0, 0, 0, 0, 0}},
		{"radix", BalanceChunkParams, uint256.NewInt(1 << 16), []uint64{1 << 16, 0, 0, 0, 0, 0, 0, 0}},
		{"two-pow-32", BalanceChunkParams, uint256.NewInt(1 << 32), []uint64{0xFFFF0000, 1, 0, 0, 0, 0, 0, 0}},
		{"max", BalanceChunkParams, max128, []uint64{
			0xFFFFFFFF, 0xFFFF0000, 0xFFFF0000, 0xFFFF0000, 0xFFFF0000, 0xFFFF0000, 0xFFFF0000, 0,
		}},
		{"amount-canonical", AmountChunkParams, uint256.NewInt(0x0001000200030004), []uint64{4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.Decompose(tt.value)
			if err != nil {
				t.Fatalf("decompose failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("chunks mismatch: got %x want %x", got, tt.want)
			}
			back, err := tt.params.Recompose(got)
			if err != nil {
				t.Fatalf("recompose failed: %v", err)
			}
			if !back.Eq(tt.value) {
				t.Fatalf("round trip mismatch: got %s want %s", back.Dec(), tt.value.Dec())
			}
		})
	}
}

func TestDecomposeRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	params := BalanceChunkParams
	limit := uint64(1)<<uint(params.ChunkBits) - 1

	for i := 0; i < 500; i++ {
		// Vary the magnitude so low and high chunks both get exercised.
		bitsWanted := rng.Intn(params.MaxBits) + 1
		raw := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), uint(bitsWanted)))
		v, _ := uint256.FromBig(raw)

		chunks, err := params.Decompose(v)
		if err != nil {
			t.Fatalf("decompose %s: %v", v.Dec(), err)
		}
		if len(chunks) != params.Chunks() {
			t.Fatalf("chunk count %d, want %d", len(chunks), params.Chunks())
		}
		for j, c := range chunks {
			if c > limit {
				t.Fatalf("value %s chunk %d = %d exceeds limit", v.Dec(), j, c)
			}
		}
		if !params.IsLocallyMaximal(chunks) {
			t.Fatalf("value %s not locally maximal: %x", v.Dec(), chunks)
		}
		back, err := Recompose(chunks, params.RadixBits)
		if err != nil {
			t.Fatalf("recompose %s: %v", v.Dec(), err)
		}
		if !back.Eq(v) {
			t.Fatalf("round trip mismatch: got %s want %s", back.Dec(), v.Dec())
		}
	}
}

func TestDecomposeOutOfRange(t *testing.T) {
	tooBig := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	if _, err := BalanceChunkParams.Decompose(tooBig); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange for 2^128, got %v", err)
	}
	if _, err := AmountChunkParams.Decompose(mustDecimal(t, "18446744073709551616")); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange for 2^64, got %v", err)
	}
	if _, err := BalanceChunkParams.DecomposeBig(big.NewInt(-1)); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange for negative value, got %v", err)
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 300)
	if _, err := BalanceChunkParams.DecomposeBig(huge); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange for 2^300, got %v", err)
	}
	got, err := BalanceChunkParams.DecomposeBig(big.NewInt(70000))
	if err != nil {
		t.Fatalf("decompose big: %v", err)
	}
	if got[0] != 70000 {
		t.Fatalf("unexpected low chunk %d", got[0])
	}
}

func TestChunkParamsValidate(t *testing.T) {
	bad := []ChunkParams{
		{RadixBits: 0, MaxBits: 128, ChunkBits: 32},
		{RadixBits: 16, MaxBits: 0, ChunkBits: 32},
		{RadixBits: 16, MaxBits: 128, ChunkBits: 0},
		{RadixBits: 16, MaxBits: 100, ChunkBits: 32},
		{RadixBits: 16, MaxBits: 128, ChunkBits: 8},
		{RadixBits: 16, MaxBits: 512, ChunkBits: 32},
		{RadixBits: 64, MaxBits: 128, ChunkBits: 64},
		{RadixBits: 16, MaxBits: 128, ChunkBits: 65},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalidChunkParams) {
			t.Fatalf("params %+v: expected ErrInvalidChunkParams, got %v", p, err)
		}
		if _, err := p.Decompose(uint256.NewInt(1)); !errors.Is(err, ErrInvalidChunkParams) {
			t.Fatalf("params %+v: decompose expected ErrInvalidChunkParams, got %v", p, err)
		}
	}
	if _, err := Recompose([]uint64{1}, 0); !errors.Is(err, ErrInvalidChunkParams) {
		t.Fatalf("expected ErrInvalidChunkParams for zero radix, got %v", err)
	}
}

func TestRecomposeChecks(t *testing.T) {
	if _, err := BalanceChunkParams.Recompose(make([]uint64, 7)); !errors.Is(err, ErrChunkCountMismatch) {
		t.Fatalf("expected ErrChunkCountMismatch, got %v", err)
	}
	chunks := make([]uint64, 8)
	chunks[3] = 1 << 32
	if _, err := BalanceChunkParams.Recompose(chunks); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange for oversized chunk, got %v", err)
	}
	// Non-canonical chunks recombine to the same value as canonical ones.
	got, err := BalanceChunkParams.Recompose([]uint64{1 << 16, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("recompose: %v", err)
	}
	want, _ := BalanceChunkParams.Recompose([]uint64{0, 1, 0, 0, 0, 0, 0, 0})
	if !got.Eq(want) {
		t.Fatalf("non-canonical mismatch: %s vs %s", got.Dec(), want.Dec())
	}
	// The free function has no chunk bound but still stays within 256 bits.
	if _, err := Recompose([]uint64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1 << 20}, 16); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected ErrValueOutOfRange for 256-bit overflow, got %v", err)
	}
}

func TestIsLocallyMaximal(t *testing.T) {
	p := BalanceChunkParams
	if !p.IsLocallyMaximal([]uint64{5, 0, 0, 0, 0, 0, 0, 0}) {
		t.Fatal("single low chunk should be maximal")
	}
	if p.IsLocallyMaximal([]uint64{0, 1, 0, 0, 0, 0, 0, 0}) {
		t.Fatal("unsaturated chunk before non-zero chunk should not be maximal")
	}
	if !p.IsLocallyMaximal([]uint64{0xFFFF0000, 1, 0, 0, 0, 0, 0, 0}) {
		t.Fatal("saturated chunk before non-zero chunk should be maximal")
	}
}
