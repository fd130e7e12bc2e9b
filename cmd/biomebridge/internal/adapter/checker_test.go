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
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/internal/runner"
)

// =============================================================================
// MOCK IMPLEMENTATIONS
// =============================================================================

// mockRunner is a test double for runner.Runner with scripted responses.
type mockRunner struct {
	lookPathResult string
	lookPathErr    error

	probeResult runner.Result
	probeErr    error

	lintResult runner.Result
	lintErr    error

	runCalls []runCall
}

type runCall struct {
	dir  string
	name string
	args []string
}

func (m *mockRunner) LookPath(name string) (string, error) {
	if m.lookPathErr != nil {
		return "", m.lookPathErr
	}
	return m.lookPathResult, nil
}

func (m *mockRunner) Run(_ context.Context, dir, name string, args ...string) (runner.Result, error) {
	m.runCalls = append(m.runCalls, runCall{dir: dir, name: name, args: args})
	if len(args) > 0 && args[0] == "--version" {
		return m.probeResult, m.probeErr
	}
	return m.lintResult, m.lintErr
}

// healthyRunner scripts a resolvable, current tool.
func healthyRunner(installed string) *mockRunner {
	return &mockRunner{
		lookPathResult: "/usr/local/bin/biome",
		probeResult:    runner.Result{Stdout: "CLI:\nVersion: " + installed + "\n"},
		lintResult:     runner.Result{Stdout: `[{"diagnostics":[]}]`},
	}
}

func newTestChecker(t *testing.T, run runner.Runner) *Checker {
	t.Helper()
	c, err := New(DefaultOptions(), run, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

// projectFile creates <root>/src/main.ts under a biome.json project and
// returns its path alongside the project root.
func projectFile(t *testing.T) (file, root string) {
	t.Helper()
	root = t.TempDir()
	mkdir(t, filepath.Join(root, "src"))
	touch(t, filepath.Join(root, "biome.json"))
	file = filepath.Join(root, "src", "main.ts")
	touch(t, file)
	return file, root
}

// =============================================================================
// TEST CASES - Available
// =============================================================================

func TestAvailable_AllLegsPass(t *testing.T) {
	file, _ := projectFile(t)
	c := newTestChecker(t, healthyRunner("1.6.0"))

	if !c.Available(context.Background(), file) {
		t.Error("Expected checker to be available")
	}
}

func TestAvailable_CommandNotResolvable(t *testing.T) {
	file, _ := projectFile(t)
	run := healthyRunner("1.6.0")
	run.lookPathErr = errors.New("executable file not found in $PATH")
	c := newTestChecker(t, run)

	if c.Available(context.Background(), file) {
		t.Error("Expected unavailable when the command does not resolve")
	}
}

func TestAvailable_VersionBelowMinimum(t *testing.T) {
	file, _ := projectFile(t)
	c := newTestChecker(t, healthyRunner("1.5.9"))

	if c.Available(context.Background(), file) {
		t.Error("Expected unavailable below the minimum version")
	}
}

func TestAvailable_VersionNotDeterminable(t *testing.T) {
	file, _ := projectFile(t)
	run := healthyRunner("1.6.0")
	run.probeResult = runner.Result{Stdout: "biome, the toolchain of the web"}
	c := newTestChecker(t, run)

	if c.Available(context.Background(), file) {
		t.Error("Expected unavailable when no version triple is found")
	}
}

func TestAvailable_ProbeProcessFails(t *testing.T) {
	file, _ := projectFile(t)
	run := healthyRunner("1.6.0")
	run.probeErr = &runner.CommandError{Command: "biome --version"}
	c := newTestChecker(t, run)

	// Absence is a representable outcome, not a panic or propagated error.
	if c.Available(context.Background(), file) {
		t.Error("Expected unavailable when the probe process fails")
	}
}

func TestAvailable_NoConfigMarker(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "main.ts")
	touch(t, file)
	c := newTestChecker(t, healthyRunner("1.6.0"))
	c.locator = boundLocator(root)

	if c.Available(context.Background(), file) {
		t.Error("Expected unavailable without a project config marker")
	}
}

func TestAvailable_NotCachedAcrossCalls(t *testing.T) {
	file, _ := projectFile(t)
	run := healthyRunner("1.6.0")
	c := newTestChecker(t, run)

	// Act: two readiness checks must mean two fresh probes.
	c.Available(context.Background(), file)
	c.Available(context.Background(), file)

	// Assert
	probes := 0
	for _, call := range run.runCalls {
		if len(call.args) > 0 && call.args[0] == "--version" {
			probes++
		}
	}
	if probes != 2 {
		t.Errorf("Expected 2 version probes (no caching), got %d", probes)
	}
}

// =============================================================================
// TEST CASES - Check
// =============================================================================

func TestCheck_TranslatesDiagnostics(t *testing.T) {
	file, root := projectFile(t)
	run := healthyRunner("1.6.0")
	run.lintResult = runner.Result{
		Stdout: DefaultOptions().Banner +
			`[{"diagnostics":[{"severity":"error","description":"x","category":"c1","location":{"span":[4,10]}}]}]`,
		ExitCode: 1, // issues found; normal for a linter
	}
	c := newTestChecker(t, run)

	records, err := c.Check(context.Background(), file)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Pos != 5 || records[0].Message != "x(c1)" {
		t.Errorf("Unexpected record: %+v", records[0])
	}

	// The lint invocation must run from the discovered project root.
	last := run.runCalls[len(run.runCalls)-1]
	if last.dir != root {
		t.Errorf("Expected working directory %s, got %s", root, last.dir)
	}
	want := []string{"lint", "--reporter=json", file}
	if strings.Join(last.args, " ") != strings.Join(want, " ") {
		t.Errorf("Unexpected invocation args: %v", last.args)
	}
}

func TestCheck_NoMarkerFallsBackToDefaultDir(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "main.ts")
	touch(t, file)
	run := healthyRunner("1.6.0")
	c := newTestChecker(t, run)
	c.locator = boundLocator(root)

	if _, err := c.Check(context.Background(), file); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	last := run.runCalls[len(run.runCalls)-1]
	if last.dir != "" {
		t.Errorf("Expected default working directory, got %q", last.dir)
	}
}

func TestCheck_InvocationFailure(t *testing.T) {
	file, _ := projectFile(t)
	run := healthyRunner("1.6.0")
	run.lintErr = &runner.CommandError{Command: "biome lint", Stderr: "killed"}
	c := newTestChecker(t, run)

	_, err := c.Check(context.Background(), file)
	if err == nil {
		t.Fatal("Expected error when the subprocess cannot run")
	}
	var adapterErr *Error
	if !errors.As(err, &adapterErr) || adapterErr.Type != FailureInvocation {
		t.Errorf("Expected FailureInvocation, got %v", err)
	}
}

func TestCheck_MalformedOutputSurfaces(t *testing.T) {
	file, _ := projectFile(t)
	run := healthyRunner("1.6.0")
	run.lintResult = runner.Result{Stdout: "internal panic: thread 'main'"}
	c := newTestChecker(t, run)

	_, err := c.Check(context.Background(), file)
	if err == nil {
		t.Fatal("Expected malformed output to surface, not read as a clean file")
	}
	var adapterErr *Error
	if !errors.As(err, &adapterErr) || adapterErr.Type != FailureMalformedOutput {
		t.Errorf("Expected FailureMalformedOutput, got %v", err)
	}
}

// =============================================================================
// TEST CASES - Verify
// =============================================================================

func TestVerify_AllFindingsPresent(t *testing.T) {
	file, root := projectFile(t)
	c := newTestChecker(t, healthyRunner("1.7.1"))

	report := c.Verify(context.Background(), file)

	if len(report.Findings) != 3 {
		t.Fatalf("Expected exactly 3 findings, got %d", len(report.Findings))
	}
	if !report.Ready() {
		t.Errorf("Expected ready report, got %+v", report.Findings)
	}
	if report.Findings[0].Value != "/usr/local/bin/biome" {
		t.Errorf("Unexpected executable finding: %+v", report.Findings[0])
	}
	if report.Findings[1].Value != filepath.Join(root, "biome.json") {
		t.Errorf("Unexpected config finding: %+v", report.Findings[1])
	}
	if report.Findings[2].Value != "1.7.1" {
		t.Errorf("Unexpected version finding: %+v", report.Findings[2])
	}
}

func TestVerify_NeverFailsOutright(t *testing.T) {
	// Arrange: everything broken at once.
	root := t.TempDir()
	file := filepath.Join(root, "main.ts")
	touch(t, file)
	run := &mockRunner{
		lookPathErr: errors.New("not found"),
		probeErr:    &runner.CommandError{Command: "biome --version"},
	}
	c := newTestChecker(t, run)
	c.locator = boundLocator(root)

	// Act
	report := c.Verify(context.Background(), file)

	// Assert: three labeled findings, each marked failed, none missing.
	if len(report.Findings) != 3 {
		t.Fatalf("Expected 3 findings, got %d", len(report.Findings))
	}
	for _, f := range report.Findings {
		if f.OK {
			t.Errorf("Expected finding %q to fail, got %+v", f.Label, f)
		}
		if f.Value == "" {
			t.Errorf("Expected absence token for %q, got empty value", f.Label)
		}
	}
	if report.Findings[2].Value != "not determined" {
		t.Errorf("Expected version 'not determined', got %q", report.Findings[2].Value)
	}
}

func TestVerify_BelowMinimumVersionFindingFails(t *testing.T) {
	file, _ := projectFile(t)
	c := newTestChecker(t, healthyRunner("1.4.0"))

	report := c.Verify(context.Background(), file)

	version := report.Findings[2]
	if version.OK {
		t.Error("Expected version finding to fail below minimum")
	}
	if !strings.Contains(version.Value, "1.4.0") ||
		!strings.Contains(version.Value, "1.6.0") {
		t.Errorf("Expected both versions in the finding, got %q", version.Value)
	}
	if report.Ready() {
		t.Error("Expected report not ready")
	}
}
