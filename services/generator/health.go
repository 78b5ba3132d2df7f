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

import (
	"math"
	"math/bits"

	"github.com/AleutianAI/metadag/internal/util"
)

// MinStatsSamples is the minimum history length for Stats to return a
// real record instead of ErrInsufficientSamples.
const MinStatsSamples = 10

// DefaultHistorySize is the default capacity of the rolling output window.
const DefaultHistorySize = 1000

// runsTestSamples caps how many history values the runs test concatenates.
const runsTestSamples = 1000

// outputBits is the width of one generator output.
const outputBits = 64

// WarningKind classifies a health-check threshold breach.
type WarningKind string

const (
	// WarnLowEntropy fires when an output's bit-balance entropy proxy
	// falls below the configured threshold.
	WarnLowEntropy WarningKind = "low_entropy"

	// WarnHighCorrelation fires when an output is too close (in Hamming
	// distance) to its predecessor.
	WarnHighCorrelation WarningKind = "high_correlation"
)

// HealthWarning describes one advisory health-check breach. Warnings are
// observability signals, never errors: generation continues regardless.
type HealthWarning struct {
	// Kind identifies which check fired.
	Kind WarningKind

	// Value is the measured statistic.
	Value float64

	// Threshold is the configured bound the value fell short of.
	Threshold float64

	// Output is the generator output that triggered the warning.
	Output uint64
}

// WarningSink receives health warnings. Implementations must not block:
// the sink is called synchronously on the generation path.
//
// The generation core never writes to stdout/stderr itself; all warning
// output flows through the sink so callers control the destination.
type WarningSink interface {
	Notify(w HealthWarning)
}

// WarningSinkFunc adapts a function to the WarningSink interface.
type WarningSinkFunc func(w HealthWarning)

// Notify calls f(w).
func (f WarningSinkFunc) Notify(w HealthWarning) {
	f(w)
}

// NopWarningSink discards all warnings.
func NopWarningSink() WarningSink {
	return WarningSinkFunc(func(HealthWarning) {})
}

// HealthMonitor maintains the rolling output window and computes fast
// statistical proxies on each output. Its checks are monitoring signals,
// not correctness enforcement: a healthy generator can trip them on
// individual outputs and an unhealthy one can pass them.
type HealthMonitor struct {
	entropyThreshold     float64
	correlationThreshold float64
	lastOutput           uint64
	history              *util.RingBuffer[uint64]
	sink                 WarningSink
}

// NewHealthMonitor creates a monitor with the given rolling-window
// capacity and warning thresholds. The sink must be non-nil; use
// NopWarningSink to discard warnings.
func NewHealthMonitor(historySize int, entropyThreshold, correlationThreshold float64, sink WarningSink) *HealthMonitor {
	if historySize < 1 {
		historySize = DefaultHistorySize
	}
	return &HealthMonitor{
		entropyThreshold:     entropyThreshold,
		correlationThreshold: correlationThreshold,
		history:              util.NewRingBuffer[uint64](historySize),
		sink:                 sink,
	}
}

// Observe runs the per-output health checks, records any warnings, and
// appends the output to the rolling window (evicting the oldest entry at
// capacity). Never fails and never halts generation.
func (h *HealthMonitor) Observe(output uint64) {
	entropy := QuickEntropy(output)
	correlation := QuickCorrelation(output, h.lastOutput)

	if entropy < h.entropyThreshold {
		recordHealthWarning(WarnLowEntropy)
		h.sink.Notify(HealthWarning{
			Kind:      WarnLowEntropy,
			Value:     entropy,
			Threshold: h.entropyThreshold,
			Output:    output,
		})
	}
	if correlation < h.correlationThreshold {
		recordHealthWarning(WarnHighCorrelation)
		h.sink.Notify(HealthWarning{
			Kind:      WarnHighCorrelation,
			Value:     correlation,
			Threshold: h.correlationThreshold,
			Output:    output,
		})
	}

	h.lastOutput = output
	h.history.Push(output)
}

// Stats summarizes the rolling output window.
type Stats struct {
	// Samples is the number of outputs in the window (capped at the
	// window capacity).
	Samples int `json:"samples"`

	// AvgEntropy is the mean bit-balance entropy over the window.
	AvgEntropy float64 `json:"avg_entropy"`

	// RunsTestPass reports whether the concatenated window bits show a
	// run count near the random expectation.
	RunsTestPass bool `json:"runs_test_pass"`

	// UniqueRatio is distinct outputs divided by window length.
	UniqueRatio float64 `json:"unique_ratio"`
}

// Stats recomputes the window statistics on demand. Read-only: the window
// is not mutated. Returns ErrInsufficientSamples until MinStatsSamples
// outputs have been observed.
func (h *HealthMonitor) Stats() (Stats, error) {
	values := h.history.ToSlice()
	if len(values) < MinStatsSamples {
		return Stats{}, ErrInsufficientSamples
	}

	var entropySum float64
	unique := make(map[uint64]struct{}, len(values))
	for _, v := range values {
		entropySum += QuickEntropy(v)
		unique[v] = struct{}{}
	}

	return Stats{
		Samples:      len(values),
		AvgEntropy:   entropySum / float64(len(values)),
		RunsTestPass: RunsTest(values, runsTestSamples),
		UniqueRatio:  float64(len(unique)) / float64(len(values)),
	}, nil
}

// HistoryLen returns the current rolling-window length.
func (h *HealthMonitor) HistoryLen() int {
	return h.history.Size()
}

// History returns a copy of the rolling window, oldest first.
func (h *HealthMonitor) History() []uint64 {
	return h.history.ToSlice()
}

// QuickEntropy estimates the entropy of a 64-bit value from its bit
// balance: with p the fraction of set bits, the result is the binary
// entropy -p*log2(p) - (1-p)*log2(1-p), which is 0 for all-zero or
// all-one words and 1 when exactly half the bits are set.
func QuickEntropy(v uint64) float64 {
	p := float64(bits.OnesCount64(v)) / outputBits
	if p == 0 || p == 1 {
		return 0.0
	}
	// The conversion rounds the second product before the subtract so the
	// value cannot be computed via a fused multiply-subtract on arm64.
	return -p*math.Log2(p) - float64((1-p)*math.Log2(1-p))
}

// QuickCorrelation returns the fraction of differing bits between two
// consecutive outputs: popcount(x^y)/64.
//
// Despite the name this is a Hamming-distance fraction, not a statistical
// correlation coefficient. 0 means identical values; values near 0.5 are
// what independent random words produce. The name is kept for
// compatibility with the monitor's established output schema.
func QuickCorrelation(x, y uint64) float64 {
	return float64(bits.OnesCount64(x^y)) / outputBits
}

// RunsTest concatenates the 64-bit representations (most significant bit
// first) of up to samples values and counts maximal runs of equal
// consecutive bits. A random bit string of length L expects about L/2
// runs; the test passes when runs/(L/2) lies strictly between 0.9 and
// 1.1. Returns false for an empty input.
func RunsTest(values []uint64, samples int) bool {
	if len(values) == 0 || samples < 1 {
		return false
	}
	if len(values) > samples {
		values = values[:samples]
	}

	runs := 1
	prev := values[0] >> 63 // first bit, MSB first
	first := true
	for _, v := range values {
		start := 63
		if first {
			start = 62 // the very first bit seeds prev, not a transition
			first = false
		}
		for b := start; b >= 0; b-- {
			bit := (v >> uint(b)) & 1
			if bit != prev {
				runs++
				prev = bit
			}
		}
	}

	expected := float64(len(values)*outputBits) / 2
	ratio := float64(runs) / expected
	return ratio > 0.9 && ratio < 1.1
}
