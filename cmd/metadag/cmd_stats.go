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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/metadag/pkg/ux"
	"github.com/AleutianAI/metadag/services/generator"
)

// sampleTail is how many recent outputs the overview prints.
const sampleTail = 5

// runStats runs --count generation steps, then prints the statistical
// overview and a tail of recent outputs.
func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Close()

	stopMetrics, err := startMetrics(cmd.Context(), log)
	if err != nil {
		return err
	}
	defer stopMetrics()

	gen, err := generator.New(cfg, generator.WithLogger(log))
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}

	for i := 0; i < statsCount; i++ {
		gen.Next()
	}

	stats, err := gen.Stats()
	if errors.Is(err, generator.ErrInsufficientSamples) {
		ux.Warning(fmt.Sprintf("need at least %d samples for statistics, have %d",
			generator.MinStatsSamples, statsCount))
		return nil
	}
	if err != nil {
		return err
	}

	ux.Title("Statistical Overview")

	var report strings.Builder
	report.WriteString(ux.KeyValue("Samples", fmt.Sprintf("%d", stats.Samples)))
	report.WriteString("\n")
	report.WriteString(ux.KeyValue("Average Entropy", fmt.Sprintf("%.3f", stats.AvgEntropy)))
	report.WriteString("\n")
	report.WriteString(ux.KeyValue("Runs Test Pass", fmt.Sprintf("%t", stats.RunsTestPass)))
	report.WriteString("\n")
	report.WriteString(ux.KeyValue("Unique Ratio", fmt.Sprintf("%.3f", stats.UniqueRatio)))
	ux.Box("", report.String())

	history := gen.History()
	if len(history) > 0 {
		ux.Title("Sample Outputs")
		start := len(history) - sampleTail
		if start < 0 {
			start = 0
		}
		for i, v := range history[start:] {
			fmt.Printf("%s Random %d: 0x%016x\n", ux.IconBullet.Render(), i, v)
		}
	}
	return nil
}
