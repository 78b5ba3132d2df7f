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
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/metadag/pkg/logging"
)

// Generator is the public facade over the node graph and health monitor.
//
// A Generator instance is self-contained: it shares no state with other
// instances, holds no external resources, and is reconstructible only by
// replaying the same seed and call count. It is NOT safe for concurrent
// use (see the package documentation).
type Generator struct {
	cfg    Config
	graph  *Graph
	health *HealthMonitor
	log    *logging.Logger
	sink   WarningSink
	runID  string
	steps  uint64
}

// Option customizes a Generator at construction.
type Option func(*Generator)

// WithLogger sets the structured logger. Defaults to logging.Default().
func WithLogger(log *logging.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithWarningSink sets the destination for health warnings. Defaults to a
// sink that logs each warning at Warn level through the generator's
// logger.
func WithWarningSink(sink WarningSink) Option {
	return func(g *Generator) {
		g.sink = sink
	}
}

// New creates a generator from the given configuration.
//
// The configuration is validated first; violations return a wrapped
// ErrInvalidConfig. Construction is the only operation with an error
// path: after New succeeds, Next always succeeds.
//
// Example:
//
//	cfg := generator.DefaultConfig()
//	cfg.Seed = 12345
//	g, err := generator.New(cfg)
//	if err != nil {
//	    return err
//	}
//	v := g.Next()
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:   cfg,
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logging.Default()
	}
	g.log = g.log.With("run_id", g.runID)
	if g.sink == nil {
		g.sink = newLogSink(g.log)
	}

	graph, err := NewGraph(cfg.Nodes, cfg.Seed, NewSeriesEngine(cfg.Terms))
	if err != nil {
		return nil, err
	}
	g.graph = graph
	g.health = NewHealthMonitor(cfg.HistorySize, cfg.EntropyThreshold, cfg.CorrelationThreshold, g.sink)

	recordGeneratorOpen()
	g.log.Debug("generator created",
		"nodes", cfg.Nodes,
		"seed", cfg.Seed,
		"terms", cfg.Terms,
		"history_size", cfg.HistorySize,
	)
	return g, nil
}

// Next produces the next output: one graph step, XOR aggregation of the
// new node states, then the health checks. Deterministic given the prior
// call history; always succeeds.
func (g *Generator) Next() uint64 {
	start := time.Now()

	states := g.graph.Step()
	output := Aggregate(states)
	g.steps++
	g.health.Observe(output)

	recordGenerate(time.Since(start))
	return output
}

// Stats returns the rolling-window statistics. Read-only. Returns
// ErrInsufficientSamples until at least MinStatsSamples outputs exist.
func (g *Generator) Stats() (Stats, error) {
	return g.health.Stats()
}

// History returns a copy of the recent output window, oldest first.
// Read-only; the window itself is mutated only by Next.
func (g *Generator) History() []uint64 {
	return g.health.History()
}

// Steps returns the number of Next calls made so far (wrapping).
func (g *Generator) Steps() uint64 {
	return g.steps
}

// RunID returns the instance's unique identifier, as attached to its log
// records.
func (g *Generator) RunID() string {
	return g.runID
}

// Config returns a copy of the effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// newLogSink adapts the structured logger into a WarningSink.
func newLogSink(log *logging.Logger) WarningSink {
	return WarningSinkFunc(func(w HealthWarning) {
		switch w.Kind {
		case WarnLowEntropy:
			log.Warn("low entropy detected",
				"entropy", w.Value,
				"threshold", w.Threshold,
				"output", w.Output,
			)
		case WarnHighCorrelation:
			log.Warn("high correlation detected",
				"correlation", w.Value,
				"threshold", w.Threshold,
				"output", w.Output,
			)
		default:
			log.Warn("health warning",
				"kind", string(w.Kind),
				"value", w.Value,
				"threshold", w.Threshold,
			)
		}
	})
}
