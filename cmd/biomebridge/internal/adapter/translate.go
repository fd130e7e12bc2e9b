// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package adapter

import (
	"fmt"

	"github.com/AleutianAI/BiomeBridge/pkg/diag"
)

// =============================================================================
// Diagnostic Translation
// =============================================================================

// Translate parses a sanitized JSON payload and maps every tool diagnostic
// onto one normalized host record.
//
// # Description
//
// The mapping per entry:
//
//   - Position: span start and end are 0-based character offsets; the host
//     convention is 1-based, so both shift by +1 independently.
//   - Severity: "error"/"fatal" map to SeverityError, "information"/"hint"
//     to SeverityInfo, and "warning" together with any unrecognized label to
//     SeverityWarning. Unknown labels are an expected degradation, never a
//     failure.
//   - Message: description suffixed with the category in parentheses.
//
// Record order preserves the tool's diagnostics order; no re-sorting.
//
// # Inputs
//
//   - payload: Sanitized JSON text (see Sanitizer).
//   - checkerID: Identity of the owning checker, stamped on every record.
//   - fileName: Identity of the analyzed buffer/file.
//
// # Outputs
//
//   - []diag.Error: One record per tool diagnostic; empty (non-nil) when the
//     tool reported a clean file.
//   - error: *Error with FailureMalformedOutput when the payload cannot be
//     interpreted. An empty result and a failed parse are distinct outcomes.
func Translate(payload, checkerID, fileName string) ([]diag.Error, error) {
	diagnostics, err := decodeReport(payload)
	if err != nil {
		return nil, err
	}

	errs := make([]diag.Error, 0, len(diagnostics))
	for _, d := range diagnostics {
		errs = append(errs, diag.Error{
			Pos:       d.Location.Span.Start + 1,
			EndPos:    d.Location.Span.End + 1,
			Severity:  mapSeverity(d.Severity),
			Message:   fmt.Sprintf("%s(%s)", d.Description, d.Category),
			FileName:  fileName,
			CheckerID: checkerID,
		})
	}
	return errs, nil
}

// mapSeverity folds the tool's open severity label set onto the closed host
// enum. Total over every input; the fallback is deliberate, not an error.
func mapSeverity(label string) diag.Severity {
	switch label {
	case "error", "fatal":
		return diag.SeverityError
	case "information", "hint":
		return diag.SeverityInfo
	default:
		// Includes "warning" and whatever labels future tool versions add.
		return diag.SeverityWarning
	}
}
