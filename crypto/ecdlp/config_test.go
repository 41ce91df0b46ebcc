package ecdlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSelectsEngine(t *testing.T) {
	s, err := New(DefaultConfig, testSuite, testBase, nil)
	require.NoError(t, err)
	cached, ok := s.(*Cached)
	require.True(t, ok, "default config enables the cache")
	_, ok = cached.Solver.(*BSGS)
	require.True(t, ok)

	cfg := Config{Algorithm: AlgorithmCompact, Widths: []int{16}, Workers: 2}
	s, err = New(cfg, testSuite, testBase, nil)
	require.NoError(t, err)
	compact, ok := s.(*Compact)
	require.True(t, ok)
	require.Equal(t, 2, compact.workers)
	require.False(t, s.IsInitialized())
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Algorithm: "kangaroo", Widths: []int{16}}, testSuite, testBase, nil)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = New(Config{Algorithm: AlgorithmBSGS, Widths: []int{16, 31}}, testSuite, testBase, nil)
	require.ErrorIs(t, err, ErrInvalidWidth)

	_, err = New(Config{Algorithm: AlgorithmBSGS}, testSuite, testBase, nil)
	require.ErrorIs(t, err, ErrInvalidWidth)

	_, err = New(Config{Algorithm: AlgorithmBSGS, Widths: []int{16}, CacheSize: -1}, testSuite, testBase, nil)
	require.Error(t, err)
}
