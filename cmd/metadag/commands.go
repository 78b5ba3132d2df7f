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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath   string
	seed         uint64
	nodeCount    int
	genCount     int
	statsCount   int
	outputFormat string
	quiet        bool
	jsonLogs     bool
	metricsPort  int

	rootCmd = &cobra.Command{
		Use:   "metadag",
		Short: "A deterministic pseudorandom generator built from a graph of meta-state nodes",
		Long: `metadag drives a small network of mutually-influencing 64-bit state
machines that mix truncated transcendental series through state-selected
scrambling operations. The same seed always reproduces the same stream.`,
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate outputs and print them one per line",
		RunE:  runGenerate, // Defined in cmd_generate.go
	}

	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Run the generator and print the statistical overview",
		RunE:  runStats, // Defined in cmd_stats.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML generator config")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Base seed for the node graph")
	rootCmd.PersistentFlags().IntVar(&nodeCount, "nodes", 0, "Number of nodes (0 = config/default)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress log output on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().IntVar(&metricsPort, "metrics-port", 0, "Serve Prometheus /metrics on this port (0 = off)")

	generateCmd.Flags().IntVar(&genCount, "count", 5, "Number of outputs to generate")
	generateCmd.Flags().StringVar(&outputFormat, "format", "hex", "Output format: hex or dec")

	statsCmd.Flags().IntVar(&statsCount, "count", 1000, "Number of steps to run before computing stats")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
}
