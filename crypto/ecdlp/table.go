package ecdlp

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"go.dedis.ch/kyber/v3"
)

// Table is a frozen baby-step table for one bit width. It resolves every
// x in [0, 2^width) and is safe for concurrent use once built.
type Table struct {
	group kyber.Group
	base  kyber.Point
	giant kyber.Point // m·base

	width int
	m     uint64
	steps map[string]uint32 // encode(j·base) -> j
}

// BuildTable precomputes the baby steps j·base for j in [0, 2^(width/2)).
// The build costs O(m) group additions and honours ctx cancellation; a
// cancelled build returns no table.
func BuildTable(ctx context.Context, group kyber.Group, base kyber.Point, width int) (*Table, error) {
	if err := validateWidth(width); err != nil {
		return nil, err
	}
	start := time.Now()

	m := uint64(1) << uint(width/2)
	steps := make(map[string]uint32, m)
	step := base.Clone()
	cur := group.Point().Null()
	for j := uint64(0); j < m; j++ {
		if j%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		enc, err := cur.MarshalBinary()
		if err != nil {
			return nil, err
		}
		steps[string(enc)] = uint32(j)
		cur.Add(cur, step)
	}
	t := &Table{
		group: group,
		base:  step,
		giant: group.Point().Mul(ScalarFromUint64(group, m), step),
		width: width,
		m:     m,
		steps: steps,
	}
	tableBuildTimer.UpdateSince(start)
	log.Info("Built discrete log table", "algorithm", AlgorithmBSGS, "width", width, "entries", len(steps), "elapsed", common.PrettyDuration(time.Since(start)))
	return t, nil
}

// Width returns the bit width the table covers.
func (t *Table) Width() int {
	return t.width
}

// M returns the baby-step count 2^(width/2).
func (t *Table) M() uint64 {
	return t.m
}

// Len returns the number of stored baby steps.
func (t *Table) Len() int {
	return len(t.steps)
}

// Lookup returns j if p is the j-th baby step.
func (t *Table) Lookup(p kyber.Point) (uint64, bool) {
	enc, err := p.MarshalBinary()
	if err != nil {
		return 0, false
	}
	j, ok := t.steps[string(enc)]
	return uint64(j), ok
}

// Solve searches x in [0, 2^width) with x·base == target. Each baby-step hit
// is verified against target before it is returned.
func (t *Table) Solve(target kyber.Point) (uint64, bool, error) {
	candidate := target.Clone()
	for i := uint64(0); i < t.m; i++ {
		enc, err := candidate.MarshalBinary()
		if err != nil {
			return 0, false, err
		}
		if j, ok := t.steps[string(enc)]; ok {
			x := i*t.m + uint64(j)
			if verify(t.group, t.base, x, target) {
				return x, true, nil
			}
			collisionMeter.Mark(1)
		}
		candidate.Sub(candidate, t.giant)
	}
	return 0, false, nil
}
