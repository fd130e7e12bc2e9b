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

import "testing"

// =============================================================================
// TEST CASES - VersionMatcher
// =============================================================================

func TestVersionMatcher_Extract(t *testing.T) {
	matcher, err := NewVersionMatcher("Version:")
	if err != nil {
		t.Fatalf("NewVersionMatcher failed: %v", err)
	}

	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "label with version",
			text:  "biome 1.6.0: Version: 1.6.0",
			want:  "1.6.0",
			found: true,
		},
		{
			name:  "label immediately before triple",
			text:  "Version:2.10.3",
			want:  "2.10.3",
			found: true,
		},
		{
			name:  "label with newline before triple",
			text:  "CLI:\nVersion:\n  1.7.2",
			want:  "1.7.2",
			found: true,
		},
		{
			name:  "no label",
			text:  "biome 1.6.0",
			found: false,
		},
		{
			name:  "lowercase label does not match",
			text:  "version: 1.6.0",
			found: false,
		},
		{
			name:  "incomplete triple",
			text:  "Version: 1.6",
			found: false,
		},
		{
			name:  "empty input",
			text:  "",
			found: false,
		},
		{
			name:  "first of several matches wins",
			text:  "Version: 1.6.0 Version: 9.9.9",
			want:  "1.6.0",
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := matcher.Extract(tt.text)
			if found != tt.found {
				t.Fatalf("Extract(%q) found=%v, want %v", tt.text, found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// =============================================================================
// TEST CASES - MeetsMinimum
// =============================================================================

func TestMeetsMinimum(t *testing.T) {
	tests := []struct {
		installed string
		minimum   string
		want      bool
	}{
		// Equality on all components passes: the gate is >=, not >.
		{"1.9.0", "1.9.0", true},
		// A lesser earlier component loses regardless of later ones.
		{"1.8.9", "1.9.0", false},
		// A greater earlier component wins regardless of later ones.
		{"2.0.0", "1.9.0", true},
		{"1.10.0", "1.9.9", true},
		{"0.9.9", "1.0.0", false},
		// Patch comparison is >=.
		{"1.9.1", "1.9.0", true},
		{"1.9.0", "1.9.1", false},
		// Numeric, not lexical, component comparison.
		{"1.12.0", "1.2.0", true},
	}

	for _, tt := range tests {
		if got := MeetsMinimum(tt.installed, tt.minimum); got != tt.want {
			t.Errorf("MeetsMinimum(%q, %q) = %v, want %v",
				tt.installed, tt.minimum, got, tt.want)
		}
	}
}
