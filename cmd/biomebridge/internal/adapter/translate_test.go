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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/BiomeBridge/pkg/diag"
)

// =============================================================================
// TEST CASES - Translate
// =============================================================================

func TestTranslate_SingleDiagnostic(t *testing.T) {
	payload := `[{"diagnostics":[
		{"severity":"error","description":"x","category":"c1","location":{"span":[4,10]}}
	]}]`

	errs, err := Translate(payload, "biome", "main.ts")
	require.NoError(t, err)
	require.Len(t, errs, 1)

	got := errs[0]
	assert.Equal(t, 5, got.Pos, "0-based span start shifts to 1-based")
	assert.Equal(t, 11, got.EndPos, "0-based span end shifts to 1-based")
	assert.Equal(t, diag.SeverityError, got.Severity)
	assert.Equal(t, "x(c1)", got.Message)
	assert.Equal(t, "main.ts", got.FileName)
	assert.Equal(t, "biome", got.CheckerID)
}

func TestTranslate_EmptyDiagnosticsIsSuccess(t *testing.T) {
	errs, err := Translate(`[{"diagnostics":[]}]`, "biome", "main.ts")
	require.NoError(t, err, "a clean file is not a failure")
	assert.Empty(t, errs)
	assert.NotNil(t, errs, "empty result must be distinguishable from a failed parse")
}

func TestTranslate_SeverityMappingIsTotal(t *testing.T) {
	tests := []struct {
		label string
		want  diag.Severity
	}{
		{"error", diag.SeverityError},
		{"fatal", diag.SeverityError},
		{"warning", diag.SeverityWarning},
		{"information", diag.SeverityInfo},
		{"hint", diag.SeverityInfo},
		{"depreciation-notice", diag.SeverityWarning}, // unknown label degrades
		{"", diag.SeverityWarning},
		{"ERROR", diag.SeverityWarning}, // labels are case-sensitive
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapSeverity(tt.label), "label %q", tt.label)
	}
}

func TestTranslate_PreservesToolOrder(t *testing.T) {
	payload := `[{"diagnostics":[
		{"severity":"warning","description":"b","category":"c2","location":{"span":[9,12]}},
		{"severity":"error","description":"a","category":"c1","location":{"span":[0,3]}}
	]}]`

	errs, err := Translate(payload, "biome", "main.ts")
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "b(c2)", errs[0].Message, "no re-sorting by position or severity")
	assert.Equal(t, "a(c1)", errs[1].Message)
}

func TestTranslate_MalformedInputs(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not JSON", "lint found 3 problems"},
		{"empty input", ""},
		{"top-level object instead of array", `{"diagnostics":[]}`},
		{"empty top-level array", `[]`},
		{"missing diagnostics field", `[{"summary":{}}]`},
		{"span with wrong arity", `[{"diagnostics":[{"severity":"error","description":"x","category":"c","location":{"span":[4]}}]}]`},
		{"span holding strings", `[{"diagnostics":[{"severity":"error","description":"x","category":"c","location":{"span":["a","b"]}}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.payload, "biome", "main.ts")
			require.Error(t, err)

			var adapterErr *Error
			require.True(t, errors.As(err, &adapterErr), "expected structured *Error, got %T", err)
			assert.Equal(t, FailureMalformedOutput, adapterErr.Type)
		})
	}
}

func TestTranslate_SanitizedRealOutput(t *testing.T) {
	// End-to-end over the pure-text stages: banner-wrapped raw output
	// through Sanitizer into Translate.
	raw := testBanner + `[{"diagnostics":[
		{"severity":"warning","description":"Unused variable.","category":"lint/correctness/noUnusedVariables","location":{"span":[120,128]}}
	]}]` + "\nlint checked 1 file"

	payload := newTestSanitizer().Clean(raw)
	errs, err := Translate(payload, "biome", "src/app.ts")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, 121, errs[0].Pos)
	assert.Equal(t, "Unused variable.(lint/correctness/noUnusedVariables)", errs[0].Message)
}
