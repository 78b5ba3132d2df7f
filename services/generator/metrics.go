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
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for generator operations.
var meter = otel.Meter("aleutian.metadag")

// Metrics for generation and health monitoring.
var (
	outputsTotal     metric.Int64Counter
	generateLatency  metric.Float64Histogram
	healthWarnings   metric.Int64Counter
	generatorsActive metric.Int64UpDownCounter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		outputsTotal, err = meter.Int64Counter(
			"metadag_outputs_total",
			metric.WithDescription("Total number of generated outputs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		generateLatency, err = meter.Float64Histogram(
			"metadag_generate_duration_seconds",
			metric.WithDescription("Duration of one generation step"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		healthWarnings, err = meter.Int64Counter(
			"metadag_health_warnings_total",
			metric.WithDescription("Health-check threshold breaches by kind"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		generatorsActive, err = meter.Int64UpDownCounter(
			"metadag_generators_active",
			metric.WithDescription("Number of live generator instances"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordGenerate records one generation step.
//
// Instruments are recorded against context.Background(): Next carries no
// context by design (the generator has no cancellation semantics), and
// otel sync instruments only use the context for exemplars.
func recordGenerate(duration time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}
	ctx := context.Background()
	outputsTotal.Add(ctx, 1)
	generateLatency.Record(ctx, duration.Seconds())
}

// recordHealthWarning counts one advisory health warning.
func recordHealthWarning(kind WarningKind) {
	if err := initMetrics(); err != nil {
		return
	}
	healthWarnings.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("kind", string(kind))))
}

// recordGeneratorOpen tracks generator construction.
func recordGeneratorOpen() {
	if err := initMetrics(); err != nil {
		return
	}
	generatorsActive.Add(context.Background(), 1)
}
