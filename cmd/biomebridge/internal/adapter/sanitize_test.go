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

const testBanner = "The --reporter=json option is unstable/experimental " +
	"and its output might change between patches/minor releases."

func newTestSanitizer() Sanitizer {
	return Sanitizer{Banner: testBanner, SectionMarker: "lint "}
}

// =============================================================================
// TEST CASES - Sanitizer
// =============================================================================

func TestSanitizer_RemovesLeadingBanner(t *testing.T) {
	s := newTestSanitizer()
	raw := testBanner + `[{"diagnostics":[]}]`

	if got := s.Clean(raw); got != `[{"diagnostics":[]}]` {
		t.Errorf("Expected bare payload, got %q", got)
	}
}

func TestSanitizer_BannerAbsentIsNoOp(t *testing.T) {
	s := newTestSanitizer()
	raw := `[{"diagnostics":[]}]`

	if got := s.Clean(raw); got != raw {
		t.Errorf("Expected input unchanged, got %q", got)
	}
}

func TestSanitizer_BannerMidStream(t *testing.T) {
	// The tool mixes warnings with structured output non-deterministically;
	// the banner can land anywhere before the payload.
	s := newTestSanitizer()
	raw := "some earlier noise\n" + testBanner + "\n" + `[{"diagnostics":[]}]`

	if got := s.Clean(raw); got != "\n"+`[{"diagnostics":[]}]` {
		t.Errorf("Expected payload after banner, got %q", got)
	}
}

func TestSanitizer_StopsAtSectionMarker(t *testing.T) {
	s := newTestSanitizer()
	raw := testBanner + `[{"diagnostics":[]}]` + "\nlint summary follows"

	if got := s.Clean(raw); got != `[{"diagnostics":[]}]`+"\n" {
		t.Errorf("Expected payload cut at section marker, got %q", got)
	}
}

func TestSanitizer_Idempotent(t *testing.T) {
	s := newTestSanitizer()
	inputs := []string{
		`[{"diagnostics":[]}]`,
		testBanner + `[{"diagnostics":[]}]`,
		testBanner + `[{"diagnostics":[]}]` + "\nlint checked 3 files",
		"",
	}

	for _, raw := range inputs {
		once := s.Clean(raw)
		twice := s.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestSanitizer_EmptyBannerNeverMatches(t *testing.T) {
	// A zero-value Sanitizer must behave as a pass-through, not cut the
	// input at position zero.
	s := Sanitizer{}
	raw := `[{"diagnostics":[]}]` + "\nlint trailer"

	if got := s.Clean(raw); got != raw {
		t.Errorf("Expected pass-through for zero-value sanitizer, got %q", got)
	}
}
