// Package ecdlp recovers small discrete logarithms x from x·Base, where x is
// bounded by a configured bit width. Two interchangeable engines implement the
// Solver contract: a per-width baby-step giant-step table set and a compact
// single-table engine with digest-keyed baby steps.
package ecdlp

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.dedis.ch/kyber/v3"
)

// MaxWidth is the widest supported table. Recovered values always fit a uint64.
const MaxWidth = 64

// cancelCheckInterval is how many baby steps run between context checks.
const cancelCheckInterval = 4096

const (
	// AlgorithmBSGS selects the per-width baby-step giant-step solver.
	AlgorithmBSGS = "bsgs"
	// AlgorithmCompact selects the digest-keyed single-table solver.
	AlgorithmCompact = "compact"
)

// Solver recovers x from x·Base for x below 2^w, w being the widest bit
// width the solver was initialized with.
//
// Initialize is idempotent and safe for concurrent use; a failed
// initialization may simply be retried. Solve never blocks on a build: it
// fails with ErrNotInitialized until Initialize has completed, and with
// ErrNotFound when no verified x exists in range. Width reports w, and is
// zero until Initialize has completed.
type Solver interface {
	Initialize(ctx context.Context, widths []int) error
	IsInitialized() bool
	Width() int
	Solve(target kyber.Point) (uint64, error)
	Algorithm() string
}

// InitializeAsync starts s.Initialize in the background. The returned channel
// yields exactly one result.
func InitializeAsync(ctx context.Context, s Solver, widths []int) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- s.Initialize(ctx, widths)
	}()
	return done
}

// ScalarFromUint64 maps x into the scalar field of g.
func ScalarFromUint64(g kyber.Group, x uint64) kyber.Scalar {
	if x <= math.MaxInt64 {
		return g.Scalar().SetInt64(int64(x))
	}
	s := g.Scalar().SetInt64(int64(x >> 1))
	s.Add(s, s)
	if x&1 == 1 {
		s.Add(s, g.Scalar().One())
	}
	return s
}

func validateWidth(width int) error {
	if width <= 0 || width%2 != 0 || width > MaxWidth {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return nil
}

// normalizeWidths validates widths and returns them sorted and deduplicated.
func normalizeWidths(widths []int) ([]int, error) {
	if len(widths) == 0 {
		return nil, fmt.Errorf("%w: no widths configured", ErrInvalidWidth)
	}
	out := make([]int, 0, len(widths))
	for _, w := range widths {
		if err := validateWidth(w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	sort.Ints(out)
	uniq := out[:1]
	for _, w := range out[1:] {
		if w != uniq[len(uniq)-1] {
			uniq = append(uniq, w)
		}
	}
	return uniq, nil
}

// verify reports whether x·base equals target.
func verify(group kyber.Group, base kyber.Point, x uint64, target kyber.Point) bool {
	return group.Point().Mul(ScalarFromUint64(group, x), base).Equal(target)
}
