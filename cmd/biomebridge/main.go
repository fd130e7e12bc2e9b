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
	"log/slog"
	"os"

	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/config"
	"github.com/AleutianAI/BiomeBridge/pkg/logging"
)

// appLogger is the process-wide logger, initialized before any command runs.
var appLogger = logging.Default()

func main() {
	os.Exit(run())
}

// run executes the root command and maps any error onto the exit status.
// The deferred logger close must run before os.Exit, which skips defers.
func run() int {
	defer appLogger.Close()
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// initLogging replaces the default logger once configuration is loaded.
func initLogging(cfg *config.BridgeConfig) error {
	logger, err := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "cli",
	})
	if err != nil {
		return err
	}
	appLogger = logger
	slog.SetDefault(logger.Slog())
	return nil
}
