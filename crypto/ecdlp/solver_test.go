package ecdlp

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
)

var (
	testSuite = edwards25519.NewBlakeSHA256Ed25519()
	testBase  = testSuite.Point().Pick(testSuite.XOF([]byte("ecdlp test base")))
)

// point returns x·testBase.
func point(x uint64) kyber.Point {
	return testSuite.Point().Mul(ScalarFromUint64(testSuite, x), testBase)
}

var (
	sharedOnce sync.Once
	sharedBSGS *BSGS
	sharedErr  error
)

// sharedSolver returns a BSGS solver with 16 and 32 bit tables, built once
// per test binary.
func sharedSolver(t *testing.T) *BSGS {
	t.Helper()
	sharedOnce.Do(func() {
		sharedBSGS = NewBSGS(testSuite, testBase)
		sharedErr = sharedBSGS.Initialize(context.Background(), []int{16, 32})
	})
	require.NoError(t, sharedErr)
	return sharedBSGS
}

func TestNormalizeWidths(t *testing.T) {
	got, err := normalizeWidths([]int{32, 16, 16})
	require.NoError(t, err)
	require.Equal(t, []int{16, 32}, got)

	for _, bad := range [][]int{nil, {15}, {0}, {-2}, {MaxWidth + 2}, {16, 33}} {
		_, err := normalizeWidths(bad)
		require.ErrorIs(t, err, ErrInvalidWidth, "widths %v", bad)
	}
}

func TestScalarFromUint64(t *testing.T) {
	one := testSuite.Scalar().One()

	above := ScalarFromUint64(testSuite, math.MaxInt64+1)
	want := testSuite.Scalar().Add(ScalarFromUint64(testSuite, math.MaxInt64), one)
	require.True(t, above.Equal(want))

	top := ScalarFromUint64(testSuite, math.MaxUint64)
	want = testSuite.Scalar().Add(ScalarFromUint64(testSuite, math.MaxUint64-1), one)
	require.True(t, top.Equal(want))

	require.True(t, ScalarFromUint64(testSuite, 0).Equal(testSuite.Scalar().Zero()))
}

// testSolverContract exercises the behaviour every engine must share.
func testSolverContract(t *testing.T, s Solver) {
	_, err := s.Solve(point(1))
	require.ErrorIs(t, err, ErrNotInitialized)
	require.False(t, s.IsInitialized())
	require.Zero(t, s.Width())

	require.NoError(t, s.Initialize(context.Background(), []int{32, 16}))
	require.True(t, s.IsInitialized())
	require.Equal(t, 32, s.Width())

	for _, x := range []uint64{0, 1, 100, 255, 256, 65535, 65536, 100000, 1<<31 + 12345, 1<<32 - 1} {
		got, err := s.Solve(point(x))
		require.NoError(t, err, "x=%d", x)
		require.Equal(t, x, got)
	}
	_, err = s.Solve(point(1 << 32))
	require.ErrorIs(t, err, ErrNotFound)

	// Re-initializing is a no-op.
	require.NoError(t, s.Initialize(context.Background(), []int{16}))
	require.NoError(t, s.Initialize(context.Background(), []int{16, 32}))
	require.Equal(t, 32, s.Width())
}

func TestSolverContractBSGS(t *testing.T) {
	s := NewBSGS(testSuite, testBase)
	testSolverContract(t, s)
	require.Equal(t, AlgorithmBSGS, s.Algorithm())
	require.EqualValues(t, 2, s.builds.Load())
}

func TestSolverContractCompact(t *testing.T) {
	s := NewCompact(testSuite, testBase, WithWorkers(4))
	testSolverContract(t, s)
	require.Equal(t, AlgorithmCompact, s.Algorithm())
	require.EqualValues(t, 1, s.builds.Load())
}

func TestInitializeAsync(t *testing.T) {
	s := NewCompact(testSuite, testBase)
	done := InitializeAsync(context.Background(), s, []int{16})
	require.NoError(t, <-done)
	require.True(t, s.IsInitialized())

	got, err := s.Solve(point(4242))
	require.NoError(t, err)
	require.EqualValues(t, 4242, got)
}

func TestInitializeRejectsBadWidths(t *testing.T) {
	for _, s := range []Solver{NewBSGS(testSuite, testBase), NewCompact(testSuite, testBase)} {
		err := s.Initialize(context.Background(), []int{17})
		require.True(t, errors.Is(err, ErrInvalidWidth), "%s: %v", s.Algorithm(), err)
		require.False(t, s.IsInitialized())
	}
}
