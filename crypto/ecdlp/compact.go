package ecdlp

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	bloomfilter "github.com/holiman/bloomfilter/v2"
	"github.com/spaolacci/murmur3"
	"go.dedis.ch/kyber/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DigestFunc maps a point encoding to the 64-bit key of the compact table.
type DigestFunc func([]byte) uint64

const defaultDigestName = "murmur3"

// filterFalsePositiveRate sizes the membership filter in front of the sorted
// baby steps. Most giant steps miss, and a filter miss skips the search.
const filterFalsePositiveRate = 0.01

// digestHasher feeds a precomputed digest to the bloom filter.
type digestHasher uint64

func (d digestHasher) Write(p []byte) (n int, err error) { panic("not implemented") }
func (d digestHasher) Sum(b []byte) []byte { panic("not implemented") }
func (d digestHasher) Reset() { panic("not implemented") }
func (d digestHasher) BlockSize() int { panic("not implemented") }
func (d digestHasher) Size() int { return 8 }
func (d digestHasher) Sum64() uint64 { return uint64(d) }

type compactEntry struct {
	digest uint64
	index  uint32
}

func (e compactEntry) less(o compactEntry) bool {
	if e.digest != o.digest {
		return e.digest < o.digest
	}
	return e.index < o.index
}

// compactTable is one frozen table covering [0, 2^width).
type compactTable struct {
	width   int
	m       uint64
	giant   kyber.Point
	entries []compactEntry // sorted by digest, then index
	filter  *bloomfilter.Filter
}

// index builds the membership filter over the table digests.
func (t *compactTable) index() error {
	filter, err := bloomfilter.NewOptimal(uint64(len(t.entries)), filterFalsePositiveRate)
	if err != nil {
		return err
	}
	for _, e := range t.entries {
		filter.Add(digestHasher(e.digest))
	}
	t.filter = filter
	return nil
}

// Compact is the alternate solver engine. It keeps a single table sized for
// the widest requested width whose baby steps are keyed by a 64-bit digest
// of the point encoding and kept in a sorted slice, roughly a third of the
// memory of a map keyed by full encodings. Digest collisions are resolved by
// verifying every candidate.
type Compact struct {
	group kyber.Group
	base  kyber.Point

	digest     DigestFunc
	digestName string
	workers    int
	store      *TableStore

	table  atomic.Pointer[compactTable]
	flight singleflight.Group
	builds atomic.Int64
}

// CompactOption configures a Compact solver.
type CompactOption func(*Compact)

// WithWorkers sets the number of goroutines building baby steps.
func WithWorkers(n int) CompactOption {
	return func(s *Compact) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithTableStore persists built tables to store and reuses them on startup.
func WithTableStore(store *TableStore) CompactOption {
	return func(s *Compact) {
		s.store = store
	}
}

// WithDigest replaces the baby-step digest. The name keys persisted tables.
func WithDigest(name string, fn DigestFunc) CompactOption {
	return func(s *Compact) {
		s.digestName = name
		s.digest = fn
	}
}

// NewCompact returns an uninitialized compact solver for targets in base.
func NewCompact(group kyber.Group, base kyber.Point, opts ...CompactOption) *Compact {
	s := &Compact{
		group:      group,
		base:       base.Clone(),
		digest:     murmur3.Sum64,
		digestName: defaultDigestName,
		workers:    runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Algorithm implements Solver.
func (s *Compact) Algorithm() string {
	return AlgorithmCompact
}

// IsInitialized implements Solver.
func (s *Compact) IsInitialized() bool {
	return s.table.Load() != nil
}

// Width returns the width of the installed table, or zero.
func (s *Compact) Width() int {
	if t := s.table.Load(); t != nil {
		return t.width
	}
	return 0
}

// Initialize builds, or loads from the table store, a table for the widest
// of widths. A table at least that wide already installed is kept.
func (s *Compact) Initialize(ctx context.Context, widths []int) error {
	ws, err := normalizeWidths(widths)
	if err != nil {
		return err
	}
	want := ws[len(ws)-1]
	for s.Width() < want {
		_, err, _ := s.flight.Do(strconv.Itoa(want), func() (interface{}, error) {
			if s.Width() >= want {
				return nil, nil
			}
			t, err := s.load(ctx, want)
			if err != nil {
				return nil, err
			}
			s.install(t)
			return nil, nil
		})
		if err != nil {
			return fmt.Errorf("build %d-bit compact table: %w", want, err)
		}
	}
	return nil
}

// install publishes t unless a wider table is already in place.
func (s *Compact) install(t *compactTable) {
	for {
		cur := s.table.Load()
		if cur != nil && cur.width >= t.width {
			return
		}
		if s.table.CompareAndSwap(cur, t) {
			return
		}
	}
}

func (s *Compact) load(ctx context.Context, width int) (*compactTable, error) {
	m := uint64(1) << uint(width/2)
	t := &compactTable{
		width: width,
		m:     m,
		giant: s.group.Point().Mul(ScalarFromUint64(s.group, m), s.base),
	}
	var key []byte
	if s.store != nil {
		var err error
		if key, err = tableKey(AlgorithmCompact, s.digestName, s.group, s.base, width); err != nil {
			return nil, err
		}
		if entries, ok := s.store.loadEntries(key, m); ok {
			tableLoadMeter.Mark(1)
			log.Info("Loaded discrete log table", "algorithm", AlgorithmCompact, "width", width, "entries", len(entries))
			t.entries = entries
			return t, t.index()
		}
	}
	entries, err := s.build(ctx, width, m)
	if err != nil {
		return nil, err
	}
	t.entries = entries
	if s.store != nil {
		if err := s.store.storeEntries(key, entries); err != nil {
			log.Warn("Failed to persist discrete log table", "width", width, "err", err)
		}
	}
	return t, t.index()
}

// build computes the digests of j·base for j in [0, m) across s.workers
// goroutines, each walking a contiguous segment.
func (s *Compact) build(ctx context.Context, width int, m uint64) ([]compactEntry, error) {
	start := time.Now()

	workers := uint64(s.workers)
	if workers > m {
		workers = m
	}
	segment := (m + workers - 1) / workers
	entries := make([]compactEntry, m)

	g, gctx := errgroup.WithContext(ctx)
	for lo := uint64(0); lo < m; lo += segment {
		lo, hi := lo, lo+segment
		if hi > m {
			hi = m
		}
		g.Go(func() error {
			cur := s.group.Point().Mul(ScalarFromUint64(s.group, lo), s.base)
			for j := lo; j < hi; j++ {
				if (j-lo)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				enc, err := cur.MarshalBinary()
				if err != nil {
					return err
				}
				entries[j] = compactEntry{digest: s.digest(enc), index: uint32(j)}
				cur.Add(cur, s.base)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].less(entries[b]) })

	s.builds.Add(1)
	tableBuildTimer.UpdateSince(start)
	log.Info("Built discrete log table", "algorithm", AlgorithmCompact, "width", width, "entries", m, "workers", workers, "elapsed", common.PrettyDuration(time.Since(start)))
	return entries, nil
}

// Solve implements Solver. Giant steps start at zero, so small values are
// found after few steps regardless of the table width.
func (s *Compact) Solve(target kyber.Point) (uint64, error) {
	t := s.table.Load()
	if t == nil {
		return 0, ErrNotInitialized
	}
	defer solveTimer.UpdateSince(time.Now())

	candidate := target.Clone()
	for i := uint64(0); i < t.m; i++ {
		enc, err := candidate.MarshalBinary()
		if err != nil {
			return 0, err
		}
		d := s.digest(enc)
		if !t.filter.Contains(digestHasher(d)) {
			candidate.Sub(candidate, t.giant)
			continue
		}
		n := sort.Search(len(t.entries), func(k int) bool { return t.entries[k].digest >= d })
		for ; n < len(t.entries) && t.entries[n].digest == d; n++ {
			x := i*t.m + uint64(t.entries[n].index)
			if verify(s.group, s.base, x, target) {
				solveHitMeter.Mark(1)
				return x, nil
			}
			collisionMeter.Mark(1)
		}
		candidate.Sub(candidate, t.giant)
	}
	solveMissMeter.Mark(1)
	return 0, fmt.Errorf("%w: beyond %d bits", ErrNotFound, t.width)
}
