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

import "strings"

// =============================================================================
// Output Sanitizer
// =============================================================================

// Sanitizer isolates the machine-readable payload in a tool's captured
// stdout.
//
// # Description
//
// Biome interleaves an unstructured advisory banner with its JSON reporter
// output: depending on version and invocation the banner may precede the
// payload, appear mid-stream, or be absent entirely, and a human-readable
// lint summary section can trail the payload. Sanitizer extracts the text
// between the banner and the next section marker (or end of input), which is
// the JSON payload.
//
// Like VersionMatcher, this is a pure text function kept apart from process
// spawning so it is unit-testable without a subprocess.
//
// # Invariants
//
//   - Banner absent: the input is returned unchanged (already clean).
//   - Idempotent: cleaning already-cleaned output is a no-op, since the
//     banner never survives a first pass.
type Sanitizer struct {
	// Banner is the advisory text the tool prepends or interleaves with its
	// JSON output.
	Banner string

	// SectionMarker begins the human-readable section that can follow the
	// payload.
	SectionMarker string
}

// Clean returns the JSON payload segment of raw.
func (s Sanitizer) Clean(raw string) string {
	if s.Banner == "" {
		return raw
	}
	start := strings.Index(raw, s.Banner)
	if start < 0 {
		return raw
	}
	payload := raw[start+len(s.Banner):]
	if s.SectionMarker != "" {
		if end := strings.Index(payload, s.SectionMarker); end >= 0 {
			payload = payload[:end]
		}
	}
	return payload
}
