package ecdlp

import (
	lru "github.com/hashicorp/golang-lru"
	"go.dedis.ch/kyber/v3"
)

// Cached remembers successful solves of the wrapped solver, keyed by the
// target encoding. Failures are never cached.
type Cached struct {
	Solver
	cache *lru.ARCCache
}

// NewCached wraps inner with an ARC cache holding up to size results.
func NewCached(inner Solver, size int) (*Cached, error) {
	cache, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cached{Solver: inner, cache: cache}, nil
}

// Solve implements Solver.
func (c *Cached) Solve(target kyber.Point) (uint64, error) {
	enc, err := target.MarshalBinary()
	if err != nil {
		return 0, err
	}
	if x, ok := c.cache.Get(string(enc)); ok {
		cacheHitMeter.Mark(1)
		return x.(uint64), nil
	}
	cacheMissMeter.Mark(1)

	x, err := c.Solver.Solve(target)
	if err != nil {
		return 0, err
	}
	c.cache.Add(string(enc), x)
	return x, nil
}

// Len returns the number of cached results.
func (c *Cached) Len() int {
	return c.cache.Len()
}
