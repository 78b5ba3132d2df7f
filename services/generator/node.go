// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package generator

import "math"

// counterScale divides the update counter into the real-valued series
// input, keeping x small enough that the truncated series stay in a
// well-conditioned range for the first thousand steps.
const counterScale = 1000.0

// two64 scales a unit-range series value onto the full 64-bit integer
// range before truncation.
const two64 = 1 << 64

// Node is one 64-bit state machine in the generation graph.
//
// A node owns three wrapping uint64 registers: the primary state (its
// contribution to the output), the meta-state (which steers operation
// selection), and a monotonically wrapping update counter. All arithmetic
// on the three registers is modulo 2^64.
type Node struct {
	state     uint64
	metaState uint64
	counter   uint64
	series    SeriesEngine
}

// NewNode creates a node seeded with the given value. The meta-state is
// decorrelated from the primary state by XOR with the mixing constant so
// sibling nodes with adjacent seeds start on different operation tables.
func NewNode(seed uint64, series SeriesEngine) *Node {
	return &Node{
		state:     seed,
		metaState: seed ^ mixMultiplier,
		series:    series,
	}
}

// State returns the node's current primary state.
func (n *Node) State() uint64 {
	return n.state
}

// Counter returns the node's update count (wrapping).
func (n *Node) Counter() uint64 {
	return n.counter
}

// Update advances the node one generation and returns its new state.
//
// The sequencing below is bit-exact wire behavior and must not be
// reordered:
//
//  1. All eight series are evaluated at x = counter/1000, scaled to 64
//     bits, scrambled, and XOR-folded. Operation selection samples the
//     pre-update meta-state on every iteration; it cannot change
//     mid-loop because nothing has written meta-state yet.
//  2. The counter increments (wrapping) and folds into the accumulator.
//  3. The meta-state evolves from the accumulator. From this point on,
//     SelectKind sees the NEW meta-state while Apply still sees the OLD
//     primary state, which is not reassigned until the final step. The
//     predecessor loop therefore applies one constant operation per call,
//     re-selected per iteration only in the mechanical sense.
//  4. Each predecessor state is XOR-merged and scrambled in order.
//  5. The accumulator becomes the new primary state.
func (n *Node) Update(predecessors []uint64) uint64 {
	x := float64(n.counter) / counterScale

	var acc uint64
	for i := 0; i < NumSeries; i++ {
		v := wrapFloat(n.series.Eval(i, x) * two64)
		acc ^= SelectKind(n.metaState).Apply(n.state, v)
	}

	n.counter++
	acc ^= n.counter

	n.metaState = acc ^ (n.metaState >> 11)

	for _, p := range predecessors {
		acc = SelectKind(n.metaState).Apply(n.state, acc^p)
	}

	n.state = acc
	return acc
}

// wrapFloat truncates a float toward zero and returns the low 64 bits of
// the resulting integer in two's-complement form, i.e. the value of
// trunc(f) mod 2^64 for arbitrarily large or negative f.
//
// A bare uint64(f) conversion cannot do this: out-of-range float-to-int
// conversions are implementation-defined in Go, and a series term scaled
// by 2^64 routinely exceeds the uint64 range. Decomposing via Frexp gives
// the exact integer mantissa and lets ordinary (defined) uint64 shifts
// produce the wrapped value on every platform identically. Non-finite
// inputs map to 0.
func wrapFloat(f float64) uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f == 0 {
		return 0
	}
	neg := f < 0
	if neg {
		f = -f
	}

	// f = frac * 2^exp with frac in [0.5, 1); the 53-bit mantissa is an
	// exact integer after scaling.
	frac, exp := math.Frexp(f)
	mant := uint64(frac * (1 << 53))
	shift := exp - 53

	var v uint64
	switch {
	case shift >= 64:
		v = 0 // all significant bits above the low 64
	case shift >= 0:
		v = mant << uint(shift)
	default:
		// f is an integer, so the dropped low mantissa bits are zero.
		v = mant >> uint(-shift)
	}

	if neg {
		v = -v
	}
	return v
}
