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

// NumSeries is the number of transcendental series a node mixes per update.
const NumSeries = 8

// MaxTerms bounds the series truncation length. The e-series computes n!
// and the sqrt2-series computes C(2n,n) in float64; 170! is the largest
// factorial below the float64 overflow threshold, so term counts past that
// would degenerate to +Inf terms. The default of DefaultTerms is far below
// the bound; larger values are a configuration constraint, not a runtime
// fault: they clamp, never error.
const MaxTerms = 170

// SeriesEngine evaluates truncated power-series approximations of eight
// mathematical constants. It is stateless apart from the fixed truncation
// length, so a single engine is shared by every node in a graph.
//
// All series are finite sums with no convergence checking: truncation
// error is an accepted, deterministic property of the generator, not an
// approximation defect to be corrected.
//
// Every accumulation below wraps its term in an explicit float64
// conversion. The conversion forces IEEE 754 rounding of the product
// before the add, which the language otherwise permits to fuse into a
// single FMA instruction on arm64; a fused rounding would change the bit
// stream between architectures once the values are scaled to integers.
type SeriesEngine struct {
	terms int
}

// NewSeriesEngine creates an engine summing the given number of terms per
// series, clamped to [1, MaxTerms].
func NewSeriesEngine(terms int) SeriesEngine {
	if terms < 1 {
		terms = 1
	}
	if terms > MaxTerms {
		terms = MaxTerms
	}
	return SeriesEngine{terms: terms}
}

// Terms returns the truncation length.
func (s SeriesEngine) Terms() int {
	return s.terms
}

// Pi evaluates the Leibniz series: sum (-1)^n / (2n+1) * x^(2n+1).
func (s SeriesEngine) Pi(x float64) float64 {
	sum := 0.0
	sign := 1.0
	xp := x // x^(2n+1)
	for n := 0; n < s.terms; n++ {
		sum += float64(sign / float64(2*n+1) * xp)
		sign = -sign
		xp *= x * x
	}
	return sum
}

// E evaluates the Taylor expansion: sum x^n / n!.
func (s SeriesEngine) E(x float64) float64 {
	sum := 0.0
	term := 1.0 // x^n / n!
	for n := 0; n < s.terms; n++ {
		if n > 0 {
			term *= x / float64(n)
		}
		sum += term
	}
	return sum
}

// Sqrt2 evaluates the binomial expansion of sqrt(x) around 1:
// sum (-1)^n * C(2n,n) / (1-2n) * (x-1)^n.
func (s SeriesEngine) Sqrt2(x float64) float64 {
	sum := 0.0
	sign := 1.0
	comb := 1.0 // C(2n, n)
	xp := 1.0   // (x-1)^n
	for n := 0; n < s.terms; n++ {
		if n > 0 {
			comb *= 2 * float64(2*n-1) / float64(n)
			sign = -sign
			xp *= x - 1
		}
		sum += float64(sign * comb / float64(1-2*n) * xp)
	}
	return sum
}

// Phi evaluates the golden-ratio series: x plus sum phi^n * x / n for
// n >= 1, phi = (1+sqrt(5))/2.
func (s SeriesEngine) Phi(x float64) float64 {
	phi := (1 + math.Sqrt(5)) / 2
	sum := x // n = 0 term
	pp := 1.0
	for n := 1; n < s.terms; n++ {
		pp *= phi
		sum += float64(pp * x / float64(n))
	}
	return sum
}

// Zeta3 evaluates the Apery-constant series: sum x^n / n^3 for n >= 1.
func (s SeriesEngine) Zeta3(x float64) float64 {
	sum := 0.0
	xp := 1.0
	for n := 1; n < s.terms; n++ {
		xp *= x
		fn := float64(n)
		sum += float64(xp / (fn * fn * fn))
	}
	return sum
}

// Gamma evaluates the Euler-Mascheroni series approximation:
// sum (1/n - ln(1 + 1/n)) * x^n for n >= 1.
func (s SeriesEngine) Gamma(x float64) float64 {
	sum := 0.0
	xp := 1.0
	for n := 1; n < s.terms; n++ {
		xp *= x
		fn := float64(n)
		sum += float64((1/fn - math.Log(1+1/fn)) * xp)
	}
	return sum
}

// Catalan evaluates the Catalan-constant series:
// sum (-1)^n / (2n+1)^2 * x^n.
func (s SeriesEngine) Catalan(x float64) float64 {
	sum := 0.0
	sign := 1.0
	xp := 1.0
	for n := 0; n < s.terms; n++ {
		d := float64(2*n + 1)
		sum += float64(sign / (d * d) * xp)
		sign = -sign
		xp *= x
	}
	return sum
}

// Glaisher evaluates the Glaisher-Kinkelin series approximation:
// sum ln(n)/n * x^n for n >= 1.
func (s SeriesEngine) Glaisher(x float64) float64 {
	sum := 0.0
	xp := 1.0
	for n := 1; n < s.terms; n++ {
		xp *= x
		fn := float64(n)
		sum += float64(math.Log(fn) / fn * xp)
	}
	return sum
}

// Eval evaluates the index-th series at x. Indexes wrap modulo NumSeries,
// mirroring how nodes cycle through the series table.
func (s SeriesEngine) Eval(index int, x float64) float64 {
	switch index % NumSeries {
	case 0:
		return s.Pi(x)
	case 1:
		return s.E(x)
	case 2:
		return s.Sqrt2(x)
	case 3:
		return s.Phi(x)
	case 4:
		return s.Zeta3(x)
	case 5:
		return s.Gamma(x)
	case 6:
		return s.Catalan(x)
	default:
		return s.Glaisher(x)
	}
}
