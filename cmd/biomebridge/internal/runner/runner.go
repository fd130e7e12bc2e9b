// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package runner provides the process-invocation contract consumed by the
// adapter core.
//
// # Description
//
// The adapter never touches os/exec directly. Everything it needs from the
// operating system fits behind the Runner interface: resolve a command name,
// and run a command synchronously in a working directory, capturing stdout.
// This keeps the core unit-testable with canned output and isolates process
// plumbing in one place.
//
// # Exit Status Semantics
//
// For linters, a non-zero exit is part of the normal protocol (most tools
// exit 1 when they find issues). Run therefore returns a non-zero ExitCode
// as data, not as an error. The error return is reserved for invocation
// failures: the command could not be found, could not be started, or the
// context expired before it finished.
//
// # Thread Safety
//
// ExecRunner holds no mutable state. Concurrent Run calls spawn independent
// subprocesses and share nothing.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// =============================================================================
// Contract
// =============================================================================

// Result carries the captured output of one synchronous invocation.
type Result struct {
	// Stdout is the full captured standard output.
	Stdout string

	// ExitCode is the process exit code. Zero on success; linters commonly
	// exit non-zero when diagnostics were found.
	ExitCode int
}

// Runner abstracts command resolution and synchronous execution.
//
// # Methods
//
//   - LookPath: Resolves a command name against PATH.
//   - Run: Executes a command and captures stdout.
//
// Implementations must be safe for concurrent use.
type Runner interface {
	// LookPath resolves name to a full executable path.
	//
	// # Inputs
	//
	//   - name: Command name or path.
	//
	// # Outputs
	//
	//   - string: Resolved path.
	//   - error: Non-nil if the command is not resolvable.
	LookPath(name string) (string, error)

	// Run executes name with args in dir, blocking until exit.
	//
	// # Inputs
	//
	//   - ctx: Cancels/times out the subprocess.
	//   - dir: Working directory; empty means the caller's default.
	//   - name: Command name or path.
	//   - args: Arguments, not including the command itself.
	//
	// # Outputs
	//
	//   - Result: Captured stdout and exit code; valid whenever error is nil.
	//   - error: Non-nil only when the process could not be invoked at all.
	Run(ctx context.Context, dir string, name string, args ...string) (Result, error)
}

// =============================================================================
// CommandError
// =============================================================================

// CommandError wraps an invocation failure with stderr context.
//
// # Description
//
// Raised when a subprocess could not be started or was killed before
// producing a usable exit status. Implements the error interface and
// supports unwrapping via errors.Is/As.
//
// # Example
//
//	var cmdErr *CommandError
//	if errors.As(err, &cmdErr) {
//	    fmt.Println(cmdErr.Stderr)
//	}
type CommandError struct {
	// Command is the command line that failed.
	Command string

	// Stderr contains the captured standard error output (trimmed).
	Stderr string

	// Wrapped is the underlying error (may be nil).
	Wrapped error
}

// Error returns a formatted error message. Stderr takes priority over the
// wrapped error in the message when both are present.
func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Stderr)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Wrapped)
	}
	return fmt.Sprintf("%s: invocation failed", e.Command)
}

// Unwrap supports errors.Is/As chains.
func (e *CommandError) Unwrap() error {
	return e.Wrapped
}

// =============================================================================
// ExecRunner
// =============================================================================

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner creates a Runner that spawns real subprocesses.
//
// # Inputs
//
//   - logger: Structured logger for debug output; nil uses slog.Default().
//
// # Outputs
//
//   - *ExecRunner: Ready to use; no further setup required.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{logger: logger}
}

// LookPath resolves name against PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command synchronously and captures stdout.
//
// A non-zero exit with a usable status is returned as Result data. Only
// spawn failures and context expiry produce an error, wrapped in
// *CommandError so callers can surface stderr.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmdLine := name + " " + strings.Join(args, " ")
	r.logger.Debug("running command", "command", cmdLine, "dir", dir)

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			// Process ran to completion with a non-zero status. For linters
			// that is data, not failure.
			r.logger.Debug("command exited non-zero",
				"command", cmdLine, "exit_code", exitErr.ExitCode())
			return Result{Stdout: stdout.String(), ExitCode: exitErr.ExitCode()}, nil
		}
		return Result{}, &CommandError{
			Command: cmdLine,
			Stderr:  strings.TrimSpace(stderr.String()),
			Wrapped: err,
		}
	}

	return Result{Stdout: stdout.String(), ExitCode: 0}, nil
}
