// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package generator implements the metadag deterministic pseudorandom
// number generator.
//
// The generator is a small directed graph of mutually-influencing 64-bit
// state machines ("nodes"). Each generation step updates every node once:
// a node mixes truncated power-series approximations of transcendental
// constants through state-selected scrambling operations, folds in the
// states of its three predecessor nodes, and exposes its new state. The
// per-step output is the XOR of all new node states, and a rolling health
// monitor computes fast statistical proxies over the recent output window.
//
// # Determinism
//
// For a fixed (node count, seed) pair the output sequence is fully
// determined by the number of Next calls made. Node updates within a step
// are sequentially dependent: a node whose predecessor index is lower than
// its own observes that predecessor's same-step state. This read-after-write
// coupling is a correctness invariant, not an implementation accident, and
// it is why a step must never be parallelized.
//
// # Not Cryptographic
//
// The generator makes no claim of resistance to adversarial prediction.
// Its goal is a reproducible bit stream with observable statistical health
// signals, suitable for simulation and test workloads.
//
// # Thread Safety
//
// A Generator is NOT safe for concurrent use. It is designed for a single
// caller: interleaved Next calls from multiple goroutines would produce a
// bit stream that depends on scheduling, which defeats the entire purpose.
// Stats reads are safe at any point between Next calls.
package generator

import "errors"

// Sentinel errors for generator operations.
var (
	// ErrInvalidConfig is returned by New when the configuration fails
	// validation (zero nodes, out-of-range term count, and so on).
	ErrInvalidConfig = errors.New("invalid generator config")

	// ErrNoNodes is returned when a graph is constructed with a
	// non-positive node count.
	ErrNoNodes = errors.New("node count must be positive")

	// ErrInsufficientSamples is returned by Stats when fewer than
	// MinStatsSamples outputs have been generated. Statistics over a
	// handful of values would be noise presented as signal.
	ErrInsufficientSamples = errors.New("insufficient samples for statistics")
)
