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

// mixMultiplier is the 64-bit odd constant used for node meta-state
// seeding and the multiplicative scrambling operation.
const mixMultiplier uint64 = 0xC6BC279692B5C323

// OpKind identifies one of the eight fixed 64-bit mixing operations a
// node can apply. The operation table is part of the generator's wire
// behavior: reordering or "improving" an entry changes the bit stream.
type OpKind uint8

const (
	// OpShiftLeft: x << (state & 0x3F), high bits discarded.
	OpShiftLeft OpKind = iota

	// OpMulState: x * (state | 0xFF), wrapping.
	OpMulState

	// OpXorShiftRight: x ^ (x >> (state & 0x7)).
	OpXorShiftRight

	// OpAddSalted: x + ((state << 3) | 1), wrapping.
	OpAddSalted

	// OpShiftXor: (x >> 13) ^ (x << 17).
	OpShiftXor

	// OpMulConst: x * mixMultiplier, wrapping.
	OpMulConst

	// OpPseudoRotate: x ^ ((x << 7) | (x >> 5)). The 7/5 shift pair is
	// deliberately NOT a true bitwise rotation (the shifts don't sum to
	// 64); the literal formula is load-bearing for reproduction.
	OpPseudoRotate

	// OpAddSelfShift: x + (x >> ((state & 0x3) + 1)), wrapping.
	OpAddSelfShift
)

// String returns a short name for the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpShiftLeft:
		return "shift_left"
	case OpMulState:
		return "mul_state"
	case OpXorShiftRight:
		return "xor_shift_right"
	case OpAddSalted:
		return "add_salted"
	case OpShiftXor:
		return "shift_xor"
	case OpMulConst:
		return "mul_const"
	case OpPseudoRotate:
		return "pseudo_rotate"
	case OpAddSelfShift:
		return "add_self_shift"
	default:
		return "unknown"
	}
}

// SelectKind chooses an operation from the low three bits of a node's
// meta-state. Selection is a pure function of its argument: callers decide
// when the meta-state is sampled, which matters because a node's
// meta-state changes mid-update (see Node.Update).
func SelectKind(metaState uint64) OpKind {
	return OpKind(metaState & 0x7)
}

// Apply runs the operation on x. The node's primary state parameterizes
// the shift amounts and additive/multiplicative salts. All arithmetic is
// unsigned and wraps at 64 bits; shift amounts are pre-masked below 64.
func (k OpKind) Apply(state, x uint64) uint64 {
	switch k {
	case OpShiftLeft:
		return x << (state & 0x3F)
	case OpMulState:
		return x * (state | 0xFF)
	case OpXorShiftRight:
		return x ^ (x >> (state & 0x7))
	case OpAddSalted:
		return x + ((state << 3) | 1)
	case OpShiftXor:
		return (x >> 13) ^ (x << 17)
	case OpMulConst:
		return x * mixMultiplier
	case OpPseudoRotate:
		return x ^ ((x << 7) | (x >> 5))
	case OpAddSelfShift:
		return x + (x >> ((state & 0x3) + 1))
	default:
		// Unreachable: SelectKind masks to three bits.
		return x
	}
}
