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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/config"
	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/internal/adapter"
	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/internal/runner"
)

// --- Global Command Variables ---
var (
	rootCmd = &cobra.Command{
		Use:   "biomebridge",
		Short: "A bridge between the Biome linter and editor diagnostics",
		Long: `BiomeBridge decides whether the Biome linter applies to a file,
invokes it, and translates its JSON reporter output into normalized
diagnostics an editor can render.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			return initLogging(&config.Global)
		},
	}
)

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
}

// newChecker builds the configured adapter backed by real subprocesses.
func newChecker() (*adapter.Checker, error) {
	opts, err := config.Global.AdapterOptions()
	if err != nil {
		return nil, err
	}
	return adapter.New(
		opts,
		runner.NewExecRunner(appLogger.Slog()),
		appLogger.Slog(),
	)
}

// absolutePath resolves a command-line file argument; the locator's
// ancestor walk needs absolute paths.
func absolutePath(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", arg, err)
	}
	return abs, nil
}
