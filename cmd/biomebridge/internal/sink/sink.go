// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sink delivers normalized diagnostics to their consumer.
//
// # Description
//
// The adapter's only output contract is a sequence of diag.Error associated
// with a file. Sink is that contract made concrete: editors implement it
// against their own diagnostics layer; the bundled implementations cover
// the two terminal cases — human-readable text and machine-readable JSON.
package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/BiomeBridge/pkg/diag"
	"github.com/AleutianAI/BiomeBridge/pkg/ux"
)

// =============================================================================
// Contract
// =============================================================================

// Sink accepts one check's normalized diagnostics for a file.
//
// Consume is called once per completed check, including clean checks with
// an empty slice, so consumers can clear stale diagnostics for the file.
type Sink interface {
	Consume(fileName string, records []diag.Error) error
}

// =============================================================================
// Text Sink
// =============================================================================

// TextSink renders diagnostics as file:pos lines for terminals.
type TextSink struct {
	w io.Writer

	// Styled enables severity coloring; leave false when the writer is not
	// a terminal.
	Styled bool
}

// NewTextSink creates a text sink writing to w.
func NewTextSink(w io.Writer, styled bool) *TextSink {
	return &TextSink{w: w, Styled: styled}
}

// Consume writes one line per record plus a clean-file notice when the
// check found nothing.
func (s *TextSink) Consume(fileName string, records []diag.Error) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(s.w, "%s: no issues found\n", fileName)
		return err
	}
	for _, r := range records {
		line := r.String()
		if s.Styled {
			line = severityStyle(r.Severity).Render(line)
		}
		if _, err := fmt.Fprintln(s.w, line); err != nil {
			return err
		}
	}
	return nil
}

// severityStyle maps a severity onto the house palette.
func severityStyle(s diag.Severity) lipgloss.Style {
	switch s {
	case diag.SeverityError:
		return ux.Styles.Error
	case diag.SeverityInfo:
		return ux.Styles.Subtitle
	default:
		return ux.Styles.Warning
	}
}

// =============================================================================
// JSON Sink
// =============================================================================

// JSONSink emits one JSON document per check, for editors and scripts that
// consume diagnostics programmatically.
type JSONSink struct {
	w io.Writer
}

// NewJSONSink creates a JSON sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

// checkDocument is the emitted shape.
type checkDocument struct {
	File        string       `json:"file"`
	Diagnostics []diag.Error `json:"diagnostics"`
}

// Consume writes the check result as a single JSON object. An empty check
// emits an empty diagnostics array, never null, so consumers can rely on
// the field being iterable.
func (s *JSONSink) Consume(fileName string, records []diag.Error) error {
	if records == nil {
		records = []diag.Error{}
	}
	doc := checkDocument{File: fileName, Diagnostics: records}
	enc := json.NewEncoder(s.w)
	return enc.Encode(doc)
}
