// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package adapter bridges the Biome linter to a host editor's diagnostics
layer.

# Problem Statement

Editors want normalized diagnostics (position, severity, message); Biome
offers a JSON reporter wrapped in real-world mess: the binary may be absent
or too old, the reporter only exists past a minimum version, projects signal
applicability through config markers, and the JSON payload arrives mixed
with an advisory banner and a human-readable summary section.

# Solution

Checker composes the pieces into three operations:

	┌──────────────────────────────────────────────────────────────┐
	│ Available(file)                                              │
	│   LookPath ── probe --version ── version gate ── config scan │
	│   all four evaluated fresh per call, no caching              │
	├──────────────────────────────────────────────────────────────┤
	│ Check(file)                                                  │
	│   FindWorkDir ── run `biome lint --reporter=json <file>` ──  │
	│   Sanitizer.Clean ── Translate ── []diag.Error               │
	├──────────────────────────────────────────────────────────────┤
	│ Verify(file)                                                 │
	│   the three findings (executable / config / version) as a    │
	│   report for humans; never fails outright                    │
	└──────────────────────────────────────────────────────────────┘

# Failure Isolation

Every invocation's result is self-contained. Readiness answers can change
between calls (tool upgraded, config added) which is exactly why nothing is
cached. A failed subprocess never poisons a later check.

# Concurrency

Checker holds no mutable state after construction; concurrent checks on the
same instance run independent subprocesses.
*/
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/internal/runner"
	"github.com/AleutianAI/BiomeBridge/pkg/diag"
)

// =============================================================================
// Options
// =============================================================================

// Options fixes the tool-specific constants of one adapter instance.
//
// Every field has a Biome-flavored default (see DefaultOptions); all of them
// are overridable through configuration because Biome has already renamed
// its config file once and marks its JSON reporter as unstable.
type Options struct {
	// Tool is the command name or path of the linter binary.
	Tool string

	// CheckerID stamps every normalized record with the owning checker.
	CheckerID string

	// MinVersion is the minimum supported tool version (the JSON reporter
	// contract this adapter speaks).
	MinVersion string

	// VersionFlag is the argument that makes the tool print its version.
	VersionFlag string

	// VersionLabel is the case-sensitive token preceding the version triple
	// in the tool's version output.
	VersionLabel string

	// Subcommand is the lint subcommand.
	Subcommand string

	// ReporterFlag selects the machine-readable reporter.
	ReporterFlag string

	// ConfigName and LegacyConfigName are the project config markers;
	// DependencyDir is the working-directory fallback marker.
	ConfigName       string
	LegacyConfigName string
	DependencyDir    string

	// Banner and SectionMarker drive output sanitization.
	Banner        string
	SectionMarker string

	// ProbeTimeout bounds the version probe; CheckTimeout bounds a lint run.
	ProbeTimeout time.Duration
	CheckTimeout time.Duration
}

// DefaultOptions returns the Biome defaults.
func DefaultOptions() Options {
	return Options{
		Tool:         "biome",
		CheckerID:    "biome",
		MinVersion:   "1.6.0",
		VersionFlag:  "--version",
		VersionLabel: "Version:",
		Subcommand:   "lint",
		ReporterFlag: "--reporter=json",

		ConfigName:       "biome.json",
		LegacyConfigName: "rome.json",
		DependencyDir:    "node_modules",

		Banner: "The --reporter=json option is unstable/experimental and " +
			"its output might change between patches/minor releases.",
		SectionMarker: "lint ",

		ProbeTimeout: 5 * time.Second,
		CheckTimeout: 30 * time.Second,
	}
}

// =============================================================================
// Checker
// =============================================================================

// Checker is the composed diagnostic adapter.
type Checker struct {
	opts      Options
	run       runner.Runner
	locator   *ProjectLocator
	matcher   *VersionMatcher
	sanitizer Sanitizer
	logger    *slog.Logger
}

// New builds a Checker from options and a process runner.
//
// # Inputs
//
//   - opts: Tool constants; zero-valued fields are not defaulted here, pass
//     DefaultOptions() and override.
//   - run: Process-invocation contract; the production choice is
//     runner.NewExecRunner.
//   - logger: Structured logger; nil uses slog.Default().
//
// # Outputs
//
//   - *Checker: Ready for Available/Check/Verify.
//   - error: Non-nil if the version label cannot compile into a matcher.
func New(opts Options, run runner.Runner, logger *slog.Logger) (*Checker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	matcher, err := NewVersionMatcher(opts.VersionLabel)
	if err != nil {
		return nil, err
	}
	return &Checker{
		opts:    opts,
		run:     run,
		locator: NewProjectLocator(opts.ConfigName, opts.LegacyConfigName, opts.DependencyDir, logger),
		matcher: matcher,
		sanitizer: Sanitizer{
			Banner:        opts.Banner,
			SectionMarker: opts.SectionMarker,
		},
		logger: logger,
	}, nil
}

// Options returns the adapter's configured constants.
func (c *Checker) Options() Options {
	return c.opts
}

// =============================================================================
// Version Probe
// =============================================================================

// ProbeVersion runs the tool's version query and extracts the triple.
//
// Absence — unresolvable command, failed process, no labeled triple in the
// output — is a normal outcome reported as ok=false, never an error.
func (c *Checker) ProbeVersion(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ProbeTimeout)
	defer cancel()

	res, err := c.run.Run(ctx, "", c.opts.Tool, c.opts.VersionFlag)
	if err != nil {
		c.logger.Debug("version probe failed", "tool", c.opts.Tool, "error", err)
		return "", false
	}
	if res.ExitCode != 0 {
		c.logger.Debug("version probe exited non-zero",
			"tool", c.opts.Tool, "exit_code", res.ExitCode)
		return "", false
	}
	version, ok := c.matcher.Extract(res.Stdout)
	if !ok {
		c.logger.Debug("no version triple in probe output", "tool", c.opts.Tool)
	}
	return version, ok
}

// =============================================================================
// Readiness
// =============================================================================

// Available reports whether the adapter should run for file.
//
// # Description
//
// True iff the command resolves, the version probe succeeds, the installed
// version meets the minimum, and a config marker exists in the file's
// ancestor chain. All four legs are evaluated on every call: the answer can
// change per buffer and per session, so nothing is cached.
//
// Readiness failures are local and quiet (the checker is simply disabled
// for this file); details are available through Verify.
func (c *Checker) Available(ctx context.Context, file string) bool {
	if _, err := c.run.LookPath(c.opts.Tool); err != nil {
		c.logger.Debug("tool not resolvable", "tool", c.opts.Tool)
		return false
	}
	version, ok := c.ProbeVersion(ctx)
	if !ok {
		return false
	}
	if !MeetsMinimum(version, c.opts.MinVersion) {
		c.logger.Debug("tool version below minimum",
			"installed", version, "minimum", c.opts.MinVersion)
		return false
	}
	if _, ok := c.locator.FindConfig(file); !ok {
		c.logger.Debug("no project config marker", "file", file)
		return false
	}
	return true
}

// =============================================================================
// Lint Check
// =============================================================================

// Check runs one lint invocation for file and returns normalized records.
//
// # Description
//
// The working directory comes from FindWorkDir; when no marker of any kind
// exists the invocation runs from the runner's default directory rather
// than failing (graceful degradation — applicability is Available's call,
// not Check's). The captured stdout is sanitized and translated; a non-zero
// exit is expected whenever the tool found issues.
//
// # Outputs
//
//   - []diag.Error: Normalized records in the tool's own order; empty for a
//     clean file.
//   - error: *Error carrying FailureInvocation when the subprocess could not
//     run, FailureMalformedOutput when its output could not be interpreted.
//     Never nil alongside a nil slice.
func (c *Checker) Check(ctx context.Context, file string) ([]diag.Error, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.CheckTimeout)
	defer cancel()

	workDir := ""
	if project, ok := c.locator.FindWorkDir(file); ok {
		workDir = project.Dir
		c.logger.Debug("resolved working directory",
			"dir", workDir, "marker", project.Kind.String())
	} else {
		c.logger.Debug("no project marker; using default working directory",
			"file", file)
	}

	res, err := c.run.Run(ctx, workDir, c.opts.Tool,
		c.opts.Subcommand, c.opts.ReporterFlag, file)
	if err != nil {
		return nil, newError(FailureInvocation,
			fmt.Sprintf("could not invoke %s", c.opts.Tool), err)
	}

	payload := c.sanitizer.Clean(res.Stdout)
	records, err := Translate(payload, c.opts.CheckerID, file)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("check complete",
		"file", file, "diagnostics", len(records), "exit_code", res.ExitCode)
	return records, nil
}

// =============================================================================
// Verification
// =============================================================================

// Finding is one labeled verification result for display.
type Finding struct {
	// Label names the checked aspect ("executable", "config", "version").
	Label string

	// Value is the discovered value or an absence token.
	Value string

	// OK is the success indicator for display.
	OK bool
}

// VerificationReport is the human-readable readiness breakdown.
//
// Verification never fails outright: the report always carries exactly
// three findings, each independently marked.
type VerificationReport struct {
	Timestamp time.Time
	Findings  []Finding
}

// Ready reports whether every finding succeeded.
func (r *VerificationReport) Ready() bool {
	for _, f := range r.Findings {
		if !f.OK {
			return false
		}
	}
	return true
}

// String formats the report for plain display; styled rendering belongs to
// the caller.
func (r *VerificationReport) String() string {
	var b strings.Builder
	b.WriteString("=== Checker Verification ===\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", r.Timestamp.Format(time.RFC3339)))
	for _, f := range r.Findings {
		mark := "✗"
		if f.OK {
			mark = "✓"
		}
		b.WriteString(fmt.Sprintf("  %s %-12s %s\n", mark, f.Label+":", f.Value))
	}
	return b.String()
}

// Verify collects the three readiness findings for file.
//
// # Description
//
// Each finding is computed independently so a missing executable still
// yields config and version findings (the version finding then reports
// "not determined"). Mirrors Available leg for leg, but keeps the evidence.
func (c *Checker) Verify(ctx context.Context, file string) *VerificationReport {
	report := &VerificationReport{Timestamp: time.Now()}

	execValue := "not found on PATH"
	execOK := false
	if path, err := c.run.LookPath(c.opts.Tool); err == nil {
		execValue = path
		execOK = true
	}
	report.Findings = append(report.Findings, Finding{
		Label: "executable", Value: execValue, OK: execOK,
	})

	configValue := "no project configuration found"
	configOK := false
	if path, ok := c.locator.FindConfig(file); ok {
		configValue = path
		configOK = true
	}
	report.Findings = append(report.Findings, Finding{
		Label: "config", Value: configValue, OK: configOK,
	})

	versionValue := "not determined"
	versionOK := false
	if version, ok := c.ProbeVersion(ctx); ok {
		versionValue = version
		versionOK = MeetsMinimum(version, c.opts.MinVersion)
		if !versionOK {
			versionValue = fmt.Sprintf("%s (minimum supported is %s)",
				version, c.opts.MinVersion)
		}
	}
	report.Findings = append(report.Findings, Finding{
		Label: "version", Value: versionValue, OK: versionOK,
	})

	return report
}
