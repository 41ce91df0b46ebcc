package ecdlp

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.dedis.ch/kyber/v3"
	"golang.org/x/sync/singleflight"
)

// BSGS holds one baby-step table per configured bit width and answers each
// solve from the smallest table that yields a verified match.
type BSGS struct {
	group kyber.Group
	base  kyber.Point

	tables atomic.Pointer[[]*Table] // ascending by width, never mutated once stored
	ready  atomic.Bool

	lock   sync.Mutex // serialises table publication
	flight singleflight.Group
	builds atomic.Int64
}

// NewBSGS returns an uninitialized solver for targets expressed in base.
func NewBSGS(group kyber.Group, base kyber.Point) *BSGS {
	return &BSGS{
		group: group,
		base:  base.Clone(),
	}
}

// Algorithm implements Solver.
func (s *BSGS) Algorithm() string {
	return AlgorithmBSGS
}

// Initialize builds every missing table. Concurrent callers asking for the
// same width share one build; if that build is cancelled, all of them see
// the cancellation and may retry.
func (s *BSGS) Initialize(ctx context.Context, widths []int) error {
	ws, err := normalizeWidths(widths)
	if err != nil {
		return err
	}
	for _, width := range ws {
		if s.HasTable(width) {
			continue
		}
		_, err, _ := s.flight.Do(strconv.Itoa(width), func() (interface{}, error) {
			if s.HasTable(width) {
				return nil, nil
			}
			t, err := BuildTable(ctx, s.group, s.base, width)
			if err != nil {
				return nil, err
			}
			s.builds.Add(1)
			s.publish(t)
			return nil, nil
		})
		if err != nil {
			return fmt.Errorf("build %d-bit table: %w", width, err)
		}
	}
	s.ready.Store(true)
	return nil
}

// IsInitialized implements Solver.
func (s *BSGS) IsInitialized() bool {
	return s.ready.Load()
}

// HasTable reports whether a table for width has been built.
func (s *BSGS) HasTable(width int) bool {
	return s.Table(width) != nil
}

// Table returns the table built for width, or nil.
func (s *BSGS) Table(width int) *Table {
	for _, t := range s.snapshot() {
		if t.width == width {
			return t
		}
	}
	return nil
}

// Widths returns the built table widths in ascending order.
func (s *BSGS) Widths() []int {
	set := s.snapshot()
	out := make([]int, len(set))
	for i, t := range set {
		out[i] = t.width
	}
	return out
}

// Width returns the widest built table width, or zero.
func (s *BSGS) Width() int {
	set := s.snapshot()
	if !s.ready.Load() || len(set) == 0 {
		return 0
	}
	return set[len(set)-1].width
}

// Solve implements Solver, trying tables from the smallest width upward.
func (s *BSGS) Solve(target kyber.Point) (uint64, error) {
	set := s.snapshot()
	if !s.ready.Load() || len(set) == 0 {
		return 0, ErrNotInitialized
	}
	defer solveTimer.UpdateSince(time.Now())

	for _, t := range set {
		x, ok, err := t.Solve(target)
		if err != nil {
			return 0, err
		}
		if ok {
			solveHitMeter.Mark(1)
			return x, nil
		}
	}
	solveMissMeter.Mark(1)
	return 0, fmt.Errorf("%w: beyond %d bits", ErrNotFound, set[len(set)-1].width)
}

func (s *BSGS) snapshot() []*Table {
	if set := s.tables.Load(); set != nil {
		return *set
	}
	return nil
}

// publish installs t in a fresh copy of the table set.
func (s *BSGS) publish(t *Table) {
	s.lock.Lock()
	defer s.lock.Unlock()

	old := s.snapshot()
	next := make([]*Table, 0, len(old)+1)
	inserted := false
	for _, cur := range old {
		if !inserted && t.width < cur.width {
			next = append(next, t)
			inserted = true
		}
		next = append(next, cur)
	}
	if !inserted {
		next = append(next, t)
	}
	s.tables.Store(&next)
}
