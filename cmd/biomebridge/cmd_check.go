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
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/internal/sink"
	"github.com/AleutianAI/BiomeBridge/pkg/diag"
	"github.com/AleutianAI/BiomeBridge/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	checkFormat string // Output format: text or json
	checkFailOn string // Exit-code policy: error, warning, or never
)

// errDiagnosticsFound signals the fail-on policy tripped. It travels back
// through cobra as a normal error so main exits non-zero only after
// deferred teardown (log file close) has run.
var errDiagnosticsFound = errors.New("diagnostics at or above the fail-on threshold")

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// checkCmd runs the adapter pipeline once per file argument.
//
// # Description
//
// For each file: readiness is evaluated first and an unavailable checker
// skips the file quietly (spec of the editor contract — readiness failures
// disable, they do not error). Available files are linted and their
// normalized diagnostics delivered to the selected sink.
//
// # Examples
//
//	biomebridge check src/app.ts                 # human-readable output
//	biomebridge check --format json src/*.ts     # machine-readable output
//	biomebridge check --fail-on warning src/     # CI gate on any finding
var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Lint files through the bridge and print normalized diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheckCommand,
}

// =============================================================================
// COMMAND INITIALIZATION
// =============================================================================

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "text",
		"Output format: text or json")
	checkCmd.Flags().StringVar(&checkFailOn, "fail-on", "error",
		"Exit non-zero when diagnostics at or above this severity exist: error, warning, or never")
}

// =============================================================================
// COMMAND EXECUTION
// =============================================================================

func runCheckCommand(cmd *cobra.Command, args []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}

	var out sink.Sink
	switch checkFormat {
	case "text":
		out = sink.NewTextSink(os.Stdout, ux.Interactive())
	case "json":
		out = sink.NewJSONSink(os.Stdout)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", checkFormat)
	}
	if checkFailOn != "error" && checkFailOn != "warning" && checkFailOn != "never" {
		return fmt.Errorf("unknown fail-on policy %q (want error, warning, or never)", checkFailOn)
	}

	ctx := cmd.Context()
	sawError := false
	sawWarning := false
	for _, arg := range args {
		file, err := absolutePath(arg)
		if err != nil {
			return err
		}

		if !checker.Available(ctx, file) {
			appLogger.Info("checker not available for file; skipping",
				"file", file, "hint", "run `biomebridge verify` for details")
			continue
		}

		records, err := checker.Check(ctx, file)
		if err != nil {
			// Malformed output must surface as a checker error, never be
			// confused with a clean file.
			return fmt.Errorf("checking %s: %w", arg, err)
		}
		if err := out.Consume(file, records); err != nil {
			return err
		}
		for _, r := range records {
			switch r.Severity {
			case diag.SeverityError:
				sawError = true
			case diag.SeverityWarning:
				sawWarning = true
			}
		}
	}

	return failOnVerdict(checkFailOn, sawError, sawWarning)
}

// failOnVerdict translates the observed severities into the fail-on
// policy's outcome: errDiagnosticsFound when the gate trips, nil otherwise.
func failOnVerdict(policy string, sawError, sawWarning bool) error {
	switch policy {
	case "error":
		if sawError {
			return errDiagnosticsFound
		}
	case "warning":
		if sawError || sawWarning {
			return errDiagnosticsFound
		}
	}
	return nil
}
