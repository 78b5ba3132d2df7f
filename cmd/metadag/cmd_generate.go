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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/metadag/services/generator"
)

// runGenerate prints --count outputs, one per line, to stdout. Everything
// else (logs, health warnings) goes to stderr so the output stream stays
// pipeable.
func runGenerate(cmd *cobra.Command, _ []string) error {
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

	for i := 0; i < genCount; i++ {
		fmt.Println(formatOutput(gen.Next()))
	}
	return nil
}
