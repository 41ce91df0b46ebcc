package ecdlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCachedSolve(t *testing.T) {
	inner := NewBSGS(testSuite, testBase)
	c, err := NewCached(inner, 4)
	require.NoError(t, err)

	_, err = c.Solve(point(9))
	require.ErrorIs(t, err, ErrNotInitialized)
	require.Zero(t, c.Len())

	require.Zero(t, c.Width())
	require.NoError(t, c.Initialize(context.Background(), []int{16}))
	require.True(t, c.IsInitialized())
	require.Equal(t, 16, c.Width())
	require.Equal(t, AlgorithmBSGS, c.Algorithm())

	for i := 0; i < 2; i++ {
		got, err := c.Solve(point(777))
		require.NoError(t, err)
		require.EqualValues(t, 777, got)
	}
	require.Equal(t, 1, c.Len())

	_, err = c.Solve(point(1 << 20))
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, c.Len(), "failures must not be cached")
}

func TestCachedRejectsBadSize(t *testing.T) {
	_, err := NewCached(NewBSGS(testSuite, testBase), 0)
	require.Error(t, err)
}
