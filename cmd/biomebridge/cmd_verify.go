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

	"github.com/AleutianAI/BiomeBridge/pkg/ux"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// verifyCmd prints the readiness breakdown for one file.
//
// # Description
//
// Verification never fails outright: it always reports three labeled
// findings — executable, config, version — each with its own indicator, so
// a user can see exactly which leg disabled the checker.
//
// # Examples
//
//	biomebridge verify src/app.ts
//
//	  === Checker Verification ===
//	  ✓ executable:  /usr/local/bin/biome
//	  ✓ config:      /work/app/biome.json
//	  ✗ version:     1.4.0 (minimum supported is 1.6.0)
var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Explain whether the checker would run for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerifyCommand,
}

// =============================================================================
// COMMAND EXECUTION
// =============================================================================

func runVerifyCommand(cmd *cobra.Command, args []string) error {
	checker, err := newChecker()
	if err != nil {
		return err
	}
	file, err := absolutePath(args[0])
	if err != nil {
		return err
	}

	report := checker.Verify(cmd.Context(), file)

	if !ux.Interactive() {
		fmt.Print(report.String())
		return nil
	}

	fmt.Println(ux.Styles.Title.Render("=== Checker Verification ==="))
	for _, f := range report.Findings {
		icon := ux.IconError
		value := ux.Styles.Error.Render(f.Value)
		if f.OK {
			icon = ux.IconSuccess
			value = f.Value
		}
		fmt.Printf("  %s %-12s %s\n", icon.Render(), f.Label+":", value)
	}
	fmt.Println()
	if report.Ready() {
		ux.Success("checker is ready for this file")
	} else {
		ux.Warning("checker is disabled for this file")
	}
	return nil
}
