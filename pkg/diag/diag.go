// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package diag defines the normalized diagnostic model handed to host
// editors.
//
// Every diagnostic produced by an external tool is translated into exactly
// one Error before it leaves this program. Hosts consume []Error and never
// see the tool's native schema.
//
// # Position Convention
//
// Positions are 1-based buffer offsets (character positions counted from 1),
// matching the convention of editor diagnostic sinks. External tools that
// report 0-based spans are shifted by +1 during translation. Line/column
// resolution is the host's responsibility; this package does not read file
// contents.
package diag

import "fmt"

// =============================================================================
// Severity
// =============================================================================

// Severity is the closed host-facing severity set.
//
// Unlike tool-native severity labels (an open string set), Severity is a
// closed enum. Translators must map every incoming label onto one of these
// three values; SeverityWarning is the mandated fallback for labels the
// translator does not recognize.
type Severity int

const (
	// SeverityWarning flags an issue worth attention that does not block.
	// It is also the fallback for unrecognized tool severities.
	SeverityWarning Severity = iota

	// SeverityError flags an issue the tool considers a failure.
	SeverityError

	// SeverityInfo flags advisory output (hints, suggestions).
	SeverityInfo
)

// String returns the lowercase name used in rendered output.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "warning"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON sinks emit the
// severity name rather than an opaque integer.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// =============================================================================
// Error
// =============================================================================

// Error is one normalized diagnostic record.
//
// # Fields
//
//   - Pos: 1-based buffer offset where the issue starts.
//   - EndPos: 1-based buffer offset where the issue ends.
//   - Severity: closed severity enum (see Severity).
//   - Message: human-readable description, suffixed with the tool's
//     category in parentheses, e.g. "Unused variable.(lint/correctness/noUnusedVariables)".
//   - FileName: the analyzed file this record belongs to.
//   - CheckerID: identity of the checker that produced the record, so hosts
//     running several checkers can attribute and clear diagnostics per tool.
//
// # Thread Safety
//
// Error is a value type with no internal state; copies are independent.
type Error struct {
	Pos       int      `json:"pos"`
	EndPos    int      `json:"endPos"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	FileName  string   `json:"fileName"`
	CheckerID string   `json:"checker"`
}

// String renders the record in the conventional file:pos form used by
// terminal sinks and test failure messages.
func (e Error) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.FileName, e.Pos, e.Severity, e.Message)
}
