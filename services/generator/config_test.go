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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Nodes)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, DefaultTerms, cfg.Terms)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
	assert.Equal(t, 0.5, cfg.EntropyThreshold)
	assert.Equal(t, 0.2, cfg.CorrelationThreshold)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"single_node", func(c *Config) { c.Nodes = 1 }, true},
		{"zero_nodes", func(c *Config) { c.Nodes = 0 }, false},
		{"negative_nodes", func(c *Config) { c.Nodes = -1 }, false},
		{"zero_terms", func(c *Config) { c.Terms = 0 }, false},
		{"max_terms", func(c *Config) { c.Terms = 170 }, true},
		{"terms_over_factorial_range", func(c *Config) { c.Terms = 171 }, false},
		{"history_below_stats_minimum", func(c *Config) { c.HistorySize = 9 }, false},
		{"history_at_stats_minimum", func(c *Config) { c.HistorySize = 10 }, true},
		{"entropy_threshold_above_one", func(c *Config) { c.EntropyThreshold = 1.5 }, false},
		{"negative_correlation_threshold", func(c *Config) { c.CorrelationThreshold = -0.1 }, false},
		{"thresholds_at_bounds", func(c *Config) {
			c.EntropyThreshold = 0
			c.CorrelationThreshold = 1
		}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadag.yaml")
	data := []byte("nodes: 16\nseed: 99\nentropy_threshold: 0.4\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Nodes)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 0.4, cfg.EntropyThreshold)

	// Unset fields keep their defaults.
	assert.Equal(t, DefaultTerms, cfg.Terms)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
	assert.Equal(t, 0.2, cfg.CorrelationThreshold)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: [unclosed"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: 0\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
