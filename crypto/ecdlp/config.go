package ecdlp

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"go.dedis.ch/kyber/v3"
)

// Config selects and sizes the discrete log solver. It is read once at
// startup; the chosen engine lives for the rest of the process.
type Config struct {
	Algorithm string `toml:",omitempty"` // "bsgs" or "compact"
	Widths    []int  `toml:",omitempty"` // Table bit widths, each even and at most MaxWidth
	Workers   int    `toml:",omitempty"` // Build goroutines for the compact engine, 0 means NumCPU
	CacheSize int    `toml:",omitempty"` // Solved targets kept in memory, 0 disables the cache
}

// DefaultConfig covers 32-bit chunk plaintexts with a fast path for 16-bit ones.
var DefaultConfig = Config{
	Algorithm: AlgorithmBSGS,
	Widths:    []int{16, 32},
	CacheSize: 1024,
}

// Validate checks the configuration without building anything.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmBSGS, AlgorithmCompact:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, c.Algorithm)
	}
	if _, err := normalizeWidths(c.Widths); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("ecdlp: negative cache size %d", c.CacheSize)
	}
	return nil
}

// New returns the solver selected by cfg for targets in base. The solver is
// not initialized; callers run Initialize (or InitializeAsync) with
// cfg.Widths. store is optional and only used by the compact engine.
func New(cfg Config, group kyber.Group, base kyber.Point, store *TableStore) (Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var solver Solver
	switch cfg.Algorithm {
	case AlgorithmBSGS:
		solver = NewBSGS(group, base)
	case AlgorithmCompact:
		opts := []CompactOption{WithWorkers(cfg.Workers)}
		if store != nil {
			opts = append(opts, WithTableStore(store))
		}
		solver = NewCompact(group, base, opts...)
	}
	log.Debug("Selected discrete log solver", "algorithm", cfg.Algorithm, "widths", cfg.Widths, "cache", cfg.CacheSize)
	if cfg.CacheSize == 0 {
		return solver, nil
	}
	return NewCached(solver, cfg.CacheSize)
}
