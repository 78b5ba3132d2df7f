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
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/metadag/pkg/logging"
	"github.com/AleutianAI/metadag/services/generator"
	"github.com/AleutianAI/metadag/services/telemetry"
)

// resolveConfig layers CLI flags over the config file over defaults.
// A flag only overrides when it was set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (generator.Config, error) {
	cfg := generator.DefaultConfig()

	if configPath != "" {
		loaded, err := generator.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("nodes") {
		cfg.Nodes = nodeCount
	}

	return cfg, nil
}

// newLogger builds the CLI logger from the global flags.
func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:   logging.LevelInfo,
		Service: "cli",
		JSON:    jsonLogs,
		Quiet:   quiet,
	})
}

// startMetrics installs the telemetry pipeline and serves /metrics when
// --metrics-port is set. The returned stop function is always safe to
// call.
func startMetrics(ctx context.Context, log *logging.Logger) (stop func(), err error) {
	if metricsPort <= 0 {
		return func() {}, nil
	}

	shutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	mux := http.NewServeMux()
	if handler := telemetry.MetricsHandler(); handler != nil {
		mux.Handle("/metrics", handler)
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", metricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server failed", "error", err.Error())
		}
	}()
	log.Info("serving metrics", "port", metricsPort)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = shutdown(shutdownCtx)
	}, nil
}

// formatOutput renders one generator output per the --format flag.
func formatOutput(v uint64) string {
	if outputFormat == "dec" {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("0x%016x", v)
}
