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
	"regexp"

	"golang.org/x/mod/semver"
)

// =============================================================================
// Version Extraction
// =============================================================================

// VersionMatcher extracts a semantic version triple from free-text tool
// output.
//
// # Description
//
// Tool version output is free text; the matcher scans for the first
// major.minor.patch triple following a case-sensitive label token (for
// Biome: "Version:"), ignoring whitespace between the label and the triple.
// Absence of a match is a normal, representable outcome ("no version"),
// never a zero value.
//
// The matcher is a pure text function; it is deliberately decoupled from
// process spawning so it can be unit-tested without a subprocess.
type VersionMatcher struct {
	pattern *regexp.Regexp
}

// NewVersionMatcher compiles a matcher for the given label token.
//
// # Inputs
//
//   - label: Case-sensitive token preceding the triple, e.g. "Version:".
//
// # Outputs
//
//   - *VersionMatcher: Compiled matcher.
//   - error: Non-nil if label produces an invalid pattern (not expected for
//     plain tokens; the label is quoted before compilation).
func NewVersionMatcher(label string) (*VersionMatcher, error) {
	pattern, err := regexp.Compile(regexp.QuoteMeta(label) + `\s*([0-9]+\.[0-9]+\.[0-9]+)`)
	if err != nil {
		return nil, fmt.Errorf("compiling version pattern for label %q: %w", label, err)
	}
	return &VersionMatcher{pattern: pattern}, nil
}

// Extract returns the first version triple in text, or ("", false) if the
// labeled triple is absent.
func (m *VersionMatcher) Extract(text string) (string, bool) {
	match := m.pattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// =============================================================================
// Version Gate
// =============================================================================

// MeetsMinimum reports whether installed satisfies the minimum-supported
// version.
//
// # Description
//
// Both arguments are bare major.minor.patch triples as produced by
// VersionMatcher.Extract; well-formed input is the caller's contract.
// Comparison is lexicographic over (major, minor, patch) with the gate at
// greater-or-equal: an equal triple passes.
//
// # Examples
//
//	MeetsMinimum("1.9.0", "1.9.0") // true
//	MeetsMinimum("1.8.9", "1.9.0") // false
//	MeetsMinimum("2.0.0", "1.9.0") // true
func MeetsMinimum(installed, minimum string) bool {
	return semver.Compare("v"+installed, "v"+minimum) >= 0
}
