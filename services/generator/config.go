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
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config contains all generator settings.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after the
// generator is constructed; the generator copies it at New time.
type Config struct {
	// Nodes is the number of state machines in the graph.
	Nodes int `json:"nodes" yaml:"nodes" validate:"gte=1"`

	// Seed is the base seed; node i is seeded with Seed+i (wrapping).
	// The same (Nodes, Seed) pair always reproduces the same stream.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Terms is the series truncation length shared by all eight series.
	Terms int `json:"terms" yaml:"terms" validate:"gte=1,lte=170"`

	// HistorySize is the rolling output window capacity used for stats.
	HistorySize int `json:"history_size" yaml:"history_size" validate:"gte=10"`

	// EntropyThreshold is the per-output bit-balance entropy below which
	// a low-entropy warning is emitted.
	EntropyThreshold float64 `json:"entropy_threshold" yaml:"entropy_threshold" validate:"gte=0,lte=1"`

	// CorrelationThreshold is the Hamming-distance fraction below which
	// a high-correlation warning is emitted.
	CorrelationThreshold float64 `json:"correlation_threshold" yaml:"correlation_threshold" validate:"gte=0,lte=1"`
}

// DefaultTerms is the default series truncation length.
const DefaultTerms = 10

// DefaultConfig returns the reference configuration: 8 nodes, 10 series
// terms, a 1000-output window, and the standard warning thresholds.
func DefaultConfig() Config {
	return Config{
		Nodes:                8,
		Seed:                 0,
		Terms:                DefaultTerms,
		HistorySize:          DefaultHistorySize,
		EntropyThreshold:     0.5,
		CorrelationThreshold: 0.2,
	}
}

var validate = validator.New()

// Validate checks the configuration against its constraints. Violations
// are wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads a YAML config file, layered over DefaultConfig, and
// validates the result. Fields absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
