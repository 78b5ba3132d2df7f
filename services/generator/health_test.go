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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickEntropy(t *testing.T) {
	assert.Equal(t, 0.0, QuickEntropy(0))
	assert.Equal(t, 0.0, QuickEntropy(0xFFFFFFFFFFFFFFFF))

	// Exactly half the bits set: maximal entropy.
	assert.Equal(t, 1.0, QuickEntropy(0x5555555555555555))
	assert.Equal(t, 1.0, QuickEntropy(0x00000000FFFFFFFF))

	// 16 of 64 bits: binary entropy of p = 0.25.
	want := -0.25*math.Log2(0.25) - 0.75*math.Log2(0.75)
	assert.InDelta(t, want, QuickEntropy(0x000000000000FFFF), 1e-12)

	// A single set bit is low but nonzero entropy.
	one := QuickEntropy(1)
	assert.Greater(t, one, 0.0)
	assert.Less(t, one, 0.2)
}

func TestQuickCorrelation(t *testing.T) {
	x := uint64(0xDEADBEEFCAFEF00D)
	assert.Equal(t, 0.0, QuickCorrelation(x, x))
	assert.Equal(t, 1.0, QuickCorrelation(x, ^x))
	assert.Equal(t, 1.0/64, QuickCorrelation(x, x^1))
	assert.Equal(t, 0.5, QuickCorrelation(0, 0x5555555555555555))
	// Symmetric in its arguments.
	assert.Equal(t, QuickCorrelation(x, 42), QuickCorrelation(42, x))
}

func TestRunsTest_EmptyInput(t *testing.T) {
	assert.False(t, RunsTest(nil, 1000))
	assert.False(t, RunsTest([]uint64{1, 2, 3}, 0))
}

func TestRunsTest_ConstantBitsFail(t *testing.T) {
	zeros := make([]uint64, 100)
	assert.False(t, RunsTest(zeros, 1000))

	ones := make([]uint64, 100)
	for i := range ones {
		ones[i] = 0xFFFFFFFFFFFFFFFF
	}
	assert.False(t, RunsTest(ones, 1000))
}

// A strictly alternating bit stream has a flip at every position, so
// runs == bitlength and the ratio is 2.0: far too MANY runs is just as
// non-random as too few.
func TestRunsTest_AlternatingBitsFail(t *testing.T) {
	vals := make([]uint64, 100)
	for i := range vals {
		vals[i] = 0xAAAAAAAAAAAAAAAA
	}
	assert.False(t, RunsTest(vals, 1000))
}

// The pattern 0011 repeated has a run of exactly two at every position:
// 32 runs per word, precisely the L/2 random expectation, ratio 1.0.
func TestRunsTest_PairPatternPasses(t *testing.T) {
	vals := []uint64{0x3333333333333333, 0x3333333333333333}
	assert.True(t, RunsTest(vals, 1000))
}

func TestRunsTest_TruncatesToSampleCount(t *testing.T) {
	// The first word alone passes (ratio 1.0); appending constant words
	// collapses the run count when they are allowed in.
	vals := []uint64{0x3333333333333333, 0, 0, 0}
	assert.True(t, RunsTest(vals, 1))
	assert.False(t, RunsTest(vals, 4))
}

func TestRunsTest_MixedSequencePasses(t *testing.T) {
	// splitmix64: well-mixed deterministic words sit near L/2 runs.
	vals := make([]uint64, 200)
	state := uint64(0x9E3779B97F4A7C15)
	for i := range vals {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		vals[i] = z ^ (z >> 31)
	}
	assert.True(t, RunsTest(vals, 1000))
}

func TestHealthMonitor_WarningsFire(t *testing.T) {
	var got []HealthWarning
	sink := WarningSinkFunc(func(w HealthWarning) { got = append(got, w) })
	h := NewHealthMonitor(100, 0.5, 0.2, sink)

	// Zero output: entropy 0 and zero Hamming distance from the initial
	// last-output, so both checks trip on one Observe.
	h.Observe(0)
	require.Len(t, got, 2)
	assert.Equal(t, WarnLowEntropy, got[0].Kind)
	assert.Equal(t, 0.0, got[0].Value)
	assert.Equal(t, 0.5, got[0].Threshold)
	assert.Equal(t, WarnHighCorrelation, got[1].Kind)
	assert.Equal(t, uint64(0), got[1].Output)

	// A balanced word far from the previous output trips nothing.
	got = got[:0]
	h.Observe(0x5555555555555555)
	assert.Empty(t, got)
}

func TestHealthMonitor_CorrelationUsesPreviousOutput(t *testing.T) {
	var kinds []WarningKind
	sink := WarningSinkFunc(func(w HealthWarning) { kinds = append(kinds, w.Kind) })
	h := NewHealthMonitor(100, 0.0, 0.2, sink) // entropy check disabled

	h.Observe(0x5555555555555555)
	kinds = kinds[:0]

	// One bit away from the previous output: 1/64 < 0.2.
	h.Observe(0x5555555555555554)
	require.Len(t, kinds, 1)
	assert.Equal(t, WarnHighCorrelation, kinds[0])
}

func TestHealthMonitor_StatsRequiresMinimumSamples(t *testing.T) {
	h := NewHealthMonitor(100, 0.5, 0.2, NopWarningSink())

	for i := 0; i < MinStatsSamples; i++ {
		h.Observe(uint64(i) * 0x9E3779B97F4A7C15)
		if i < MinStatsSamples-1 {
			_, err := h.Stats()
			require.ErrorIs(t, err, ErrInsufficientSamples, "after %d samples", i+1)
		}
	}

	stats, err := h.Stats()
	require.NoError(t, err)
	assert.Equal(t, MinStatsSamples, stats.Samples)
}

func TestHealthMonitor_StatsFields(t *testing.T) {
	h := NewHealthMonitor(100, 0.5, 0.2, NopWarningSink())

	// Ten distinct balanced words.
	for i := 0; i < 10; i++ {
		h.Observe(0x5555555555555555 ^ (uint64(i) << 32) ^ uint64(i))
	}
	stats, err := h.Stats()
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Samples)
	assert.Equal(t, 1.0, stats.UniqueRatio)
	assert.Greater(t, stats.AvgEntropy, 0.9)
}

func TestHealthMonitor_UniqueRatioCountsDuplicates(t *testing.T) {
	h := NewHealthMonitor(100, 0.0, 0.0, NopWarningSink())
	for i := 0; i < 10; i++ {
		h.Observe(uint64(i % 5)) // each value observed twice
	}
	stats, err := h.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0.5, stats.UniqueRatio)
}

func TestHealthMonitor_HistoryBounded(t *testing.T) {
	h := NewHealthMonitor(50, 0.0, 0.0, NopWarningSink())
	for i := 0; i < 120; i++ {
		h.Observe(uint64(i))
	}
	assert.Equal(t, 50, h.HistoryLen())

	// Oldest entries evicted: the window holds 70..119.
	hist := h.History()
	require.Len(t, hist, 50)
	assert.Equal(t, uint64(70), hist[0])
	assert.Equal(t, uint64(119), hist[49])

	stats, err := h.Stats()
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Samples)
}

func TestNewHealthMonitor_DefaultsHistorySize(t *testing.T) {
	h := NewHealthMonitor(0, 0.5, 0.2, NopWarningSink())
	for i := 0; i < DefaultHistorySize+100; i++ {
		h.Observe(uint64(i))
	}
	assert.Equal(t, DefaultHistorySize, h.HistoryLen())
}
