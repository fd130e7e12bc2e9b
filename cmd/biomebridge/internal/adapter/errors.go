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

import "fmt"

// =============================================================================
// Failure Types
// =============================================================================

// FailureType categorizes adapter failures for programmatic handling.
//
// The taxonomy matters because the failure classes propagate differently:
// ToolUnavailable and ConfigNotFound quietly disable the checker for the
// current file (they are reported via Verify, never raised mid-check), while
// MalformedOutput must surface to the host so users can tell tool
// misbehavior apart from a clean run.
type FailureType int

const (
	// FailureToolUnavailable indicates the external tool is not resolvable,
	// its version could not be determined, or its version is below minimum.
	FailureToolUnavailable FailureType = iota

	// FailureConfigNotFound indicates no project marker exists anywhere in
	// the ancestor chain of the checked file.
	FailureConfigNotFound

	// FailureMalformedOutput indicates the tool's captured output could not
	// be interpreted as the expected JSON payload.
	FailureMalformedOutput

	// FailureInvocation indicates the subprocess could not be run at all.
	FailureInvocation
)

// String returns the failure type as a string for logging.
func (t FailureType) String() string {
	switch t {
	case FailureToolUnavailable:
		return "TOOL_UNAVAILABLE"
	case FailureConfigNotFound:
		return "CONFIG_NOT_FOUND"
	case FailureMalformedOutput:
		return "MALFORMED_OUTPUT"
	case FailureInvocation:
		return "INVOCATION_FAILED"
	default:
		return "UNKNOWN"
	}
}

// =============================================================================
// Error Type
// =============================================================================

// Error provides structured error information for adapter failures.
//
// # Description
//
// Carries a FailureType for programmatic handling, a human-readable message,
// and optional technical detail. Implements the error interface and supports
// unwrapping via errors.Is/As.
//
// # Thread Safety
//
// Error is immutable after creation and safe for concurrent reads.
type Error struct {
	// Type categorizes the failure.
	Type FailureType

	// Message is a human-readable description.
	Message string

	// Detail provides technical information for debugging (may be empty).
	Detail string

	// Wrapped is the underlying error (may be nil).
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap supports errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// newError builds an adapter Error with formatted detail.
func newError(t FailureType, message string, wrapped error) *Error {
	e := &Error{Type: t, Message: message, Wrapped: wrapped}
	if wrapped != nil {
		e.Detail = wrapped.Error()
	}
	return e
}
