// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/config"
	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/internal/sink"
	"github.com/AleutianAI/BiomeBridge/pkg/diag"
	"github.com/AleutianAI/BiomeBridge/pkg/ux"
)

// checkRunner is the slice of the adapter the watch loop needs.
type checkRunner interface {
	Available(ctx context.Context, file string) bool
	Check(ctx context.Context, file string) ([]diag.Error, error)
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// watchCmd re-checks source files as they change on disk.
//
// # Description
//
// The command installs a recursive filesystem watcher under the given
// directory, filters events down to the configured source extensions, and
// funnels changed files through a rate limiter so editor save storms produce
// one lint run per file per debounce window instead of dozens.
//
// # Examples
//
//	biomebridge watch .
//	biomebridge watch src/
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-check files whenever they change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatchCommand,
}

// =============================================================================
// COMMAND EXECUTION
// =============================================================================

func runWatchCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := absolutePath(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch target: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", root)
	}

	checker, err := newChecker()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchTree(watcher, root); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := sink.NewTextSink(os.Stdout, ux.Interactive())
	limiter := rate.NewLimiter(rate.Every(config.Global.DebounceInterval()), 1)
	changed := make(chan string, 64)

	appLogger.Info("watching for changes", "dir", root,
		"extensions", config.Global.Watch.Extensions)

	g, ctx := errgroup.WithContext(ctx)

	// Event consumer: filters raw watcher events down to interesting files
	// and keeps the directory tree covered as new subtrees appear.
	g.Go(func() error {
		defer close(changed)
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if err := handleWatchEvent(watcher, event, changed); err != nil {
					appLogger.Warn("watch event dropped", "event", event.String(), "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				appLogger.Warn("filesystem watcher error", "error", err)
			}
		}
	})

	// Dispatcher: one lint run per file per debounce window. A save burst
	// collapses to the unique set of changed files, never fewer.
	g.Go(func() error {
		for file := range changed {
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			for _, f := range drainBatch(changed, file) {
				checkChangedFile(ctx, checker, out, f)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	appLogger.Info("watch stopped")
	return nil
}

// =============================================================================
// EVENT HANDLING
// =============================================================================

// addWatchTree registers dir and every descendant directory with the
// watcher, skipping dependency trees and hidden directories.
func addWatchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipWatchDir(path, dir) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// skipWatchDir reports whether a directory should stay outside the watch
// tree. Dependency directories churn constantly and hidden directories
// hold tool state, not source.
func skipWatchDir(path, root string) bool {
	if path == root {
		return false
	}
	base := filepath.Base(path)
	if base == config.Global.Markers.DependencyDir {
		return true
	}
	return strings.HasPrefix(base, ".")
}

// handleWatchEvent forwards source-file writes to the dispatcher and adds
// newly created directories to the watch tree.
func handleWatchEvent(watcher *fsnotify.Watcher, event fsnotify.Event, changed chan<- string) error {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if skipWatchDir(event.Name, "") {
				return nil
			}
			return addWatchTree(watcher, event.Name)
		}
	}
	if !watchableFile(event.Name) {
		return nil
	}
	select {
	case changed <- event.Name:
	default:
		// Channel full: the dispatcher is behind, the file will surface
		// again on the next save.
	}
	return nil
}

// watchableFile reports whether the path carries a configured source
// extension.
func watchableFile(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range config.Global.Watch.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// drainBatch collapses a burst of queued changes into the unique set of
// changed files, in first-seen order, without blocking. Duplicate saves of
// one file cost one check; distinct files each keep theirs.
func drainBatch(changed <-chan string, first string) []string {
	batch := []string{first}
	seen := map[string]bool{first: true}
	for {
		select {
		case next, ok := <-changed:
			if !ok {
				return batch
			}
			if !seen[next] {
				seen[next] = true
				batch = append(batch, next)
			}
		default:
			return batch
		}
	}
}

// checkChangedFile runs one availability-gated lint pass and reports the
// outcome. Watch mode never exits on a failed check; the next save gets a
// fresh attempt.
func checkChangedFile(ctx context.Context, checker checkRunner, out sink.Sink, file string) {
	if !checker.Available(ctx, file) {
		appLogger.Debug("checker unavailable for changed file", "file", file)
		return
	}
	records, err := checker.Check(ctx, file)
	if err != nil {
		appLogger.Warn("check failed", "file", file, "error", err)
		return
	}
	if err := out.Consume(file, records); err != nil {
		appLogger.Warn("writing diagnostics", "file", file, "error", err)
	}
}
