// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AleutianAI/metadag/services/generator"
)

func TestFormatOutput(t *testing.T) {
	orig := outputFormat
	defer func() { outputFormat = orig }()

	outputFormat = "hex"
	if got := formatOutput(255); got != "0x00000000000000ff" {
		t.Errorf("hex format = %q", got)
	}

	outputFormat = "dec"
	if got := formatOutput(255); got != "255" {
		t.Errorf("dec format = %q", got)
	}

	// Unknown formats fall back to hex.
	outputFormat = "banana"
	if got := formatOutput(1); got != "0x0000000000000001" {
		t.Errorf("fallback format = %q", got)
	}
}

func TestResolveConfig_Defaults(t *testing.T) {
	origPath := configPath
	defer func() { configPath = origPath }()
	configPath = ""

	cfg, err := resolveConfig(generateCmd)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg != generator.DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	origPath, origSeed, origNodes := configPath, seed, nodeCount
	defer func() {
		configPath, seed, nodeCount = origPath, origSeed, origNodes
		if f := generateCmd.Flags().Lookup("seed"); f != nil {
			f.Changed = false
		}
	}()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "cfg.yaml")
	data := []byte("nodes: 16\nseed: 7\nterms: 20\n")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	// ParseFlags merges the root persistent flags into the command's set,
	// exactly as cobra does before RunE. --seed set explicitly wins over
	// the file; nodes comes from the file because its flag was not changed.
	if err := generateCmd.ParseFlags([]string{"--seed=12345"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(generateCmd)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", cfg.Seed)
	}
	if cfg.Nodes != 16 {
		t.Errorf("Nodes = %d, want 16 (from file)", cfg.Nodes)
	}
	if cfg.Terms != 20 {
		t.Errorf("Terms = %d, want 20 (from file)", cfg.Terms)
	}
}

func TestResolveConfig_BadFile(t *testing.T) {
	origPath := configPath
	defer func() { configPath = origPath }()
	configPath = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := resolveConfig(generateCmd); err == nil {
		t.Error("resolveConfig() with missing file should fail")
	}
}
