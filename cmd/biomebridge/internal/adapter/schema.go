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
	"encoding/json"
	"fmt"
)

// =============================================================================
// Tool-Native Diagnostic Schema
// =============================================================================

// The JSON reporter emits a top-level array of summary documents; only the
// first carries the diagnostics for the linted file. The schema here is an
// explicit typed decode: required fields are verified up front and a shape
// mismatch fails fast with a structured error, instead of best-effort field
// access that would silently read zero values.

// toolSummary is one element of the reporter's top-level array.
type toolSummary struct {
	// Diagnostics is a pointer so a document that omits the field entirely
	// (schema mismatch) can be told apart from an empty array (clean file).
	Diagnostics *[]toolDiagnostic `json:"diagnostics"`
}

// toolDiagnostic is one reported issue in the tool's own schema.
type toolDiagnostic struct {
	// Category is the rule identifier, e.g. "lint/suspicious/noDebugger".
	Category string `json:"category"`

	// Severity is an open string set: the tool may add labels at any time,
	// so translation degrades unknown values instead of rejecting them.
	Severity string `json:"severity"`

	// Description is the human-readable issue text.
	Description string `json:"description"`

	// Location carries the character span the issue applies to.
	Location toolLocation `json:"location"`
}

// toolLocation wraps the diagnostic's span.
type toolLocation struct {
	Span toolSpan `json:"span"`
}

// toolSpan is a [start, end] pair of 0-based character offsets.
type toolSpan struct {
	Start int
	End   int
}

// UnmarshalJSON decodes the wire form [start, end], rejecting any other
// arity so truncated spans fail the decode instead of reading as zero.
func (s *toolSpan) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("span must be an array of offsets: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("span must hold exactly 2 offsets, got %d", len(raw))
	}
	s.Start = raw[0]
	s.End = raw[1]
	return nil
}

// decodeReport parses the sanitized payload into the typed schema.
//
// Failure modes are all FailureMalformedOutput: non-JSON input, a top-level
// shape other than an array, an empty array (the first summary document is
// required), or a first document without a diagnostics field.
func decodeReport(payload string) ([]toolDiagnostic, error) {
	var summaries []toolSummary
	if err := json.Unmarshal([]byte(payload), &summaries); err != nil {
		return nil, newError(FailureMalformedOutput,
			"tool output is not the expected JSON report", err)
	}
	if len(summaries) == 0 {
		return nil, newError(FailureMalformedOutput,
			"tool output holds no summary document", nil)
	}
	first := summaries[0]
	if first.Diagnostics == nil {
		return nil, newError(FailureMalformedOutput,
			"summary document has no diagnostics field", nil)
	}
	return *first.Diagnostics, nil
}
