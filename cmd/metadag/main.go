// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command metadag drives the metadag deterministic generator.
//
// The CLI is a thin consumer of the generator's Next and Stats
// operations:
//
//	# Print five outputs for the default seed
//	metadag generate
//
//	# A reproducible stream: same seed, same outputs, every run
//	metadag generate --seed 12345 --count 10 --format hex
//
//	# Run 1000 steps and print the statistical overview
//	metadag stats --seed 12345
//
//	# Expose Prometheus metrics while generating
//	metadag generate --count 100000 --metrics-port 9090
//
// Configuration can also come from a YAML file via --config; explicit
// flags override file values.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
