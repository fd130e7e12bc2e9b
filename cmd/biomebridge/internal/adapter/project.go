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
	"log/slog"
	"os"
	"path/filepath"
)

// =============================================================================
// Marker Kinds
// =============================================================================

// MarkerKind identifies which filesystem marker justified a discovered
// project directory.
type MarkerKind int

const (
	// MarkerConfig is the tool's current config file (biome.json).
	MarkerConfig MarkerKind = iota

	// MarkerLegacyConfig is the config file under the tool's former name
	// (rome.json); still honored for unmigrated projects.
	MarkerLegacyConfig

	// MarkerDependencyDir is the package dependency directory
	// (node_modules), accepted only as a working-directory fallback.
	MarkerDependencyDir
)

// String returns the marker kind as a string for logging.
func (k MarkerKind) String() string {
	switch k {
	case MarkerConfig:
		return "config"
	case MarkerLegacyConfig:
		return "legacy-config"
	case MarkerDependencyDir:
		return "dependency-dir"
	default:
		return "unknown"
	}
}

// ProjectContext describes a discovered project directory and the marker
// that justified it. It is valid for one invocation only; callers must not
// cache it across buffer edits, since markers can appear or vanish between
// checks.
type ProjectContext struct {
	// Dir is the directory containing the marker.
	Dir string

	// MarkerPath is the resolved full path of the marker entry.
	MarkerPath string

	// Kind identifies which marker matched.
	Kind MarkerKind
}

// =============================================================================
// ProjectLocator
// =============================================================================

// ProjectLocator finds the nearest project marker above a file.
//
// # Description
//
// Walks the ancestor directories of a file outward from the file's own
// directory, up to and including the filesystem root, looking for marker
// entries. Two searches exist with different marker sets:
//
//   - FindConfig: config files only. Decides whether the tool is applicable
//     to the file at all.
//   - FindWorkDir: config files plus the dependency directory. Decides the
//     working directory for the lint invocation; the dependency directory is
//     a fallback so invocation can still run from the package root when the
//     project has no tool config committed.
//
// At each directory level the marker kinds are tried in priority order, but
// a nearer directory always beats a farther one: kind priority only breaks
// ties within a single directory.
//
// # Thread Safety
//
// ProjectLocator is stateless apart from its configuration and performs no
// caching; each call re-reads the filesystem (config can change between
// checks).
type ProjectLocator struct {
	// configName is the current config file name (e.g. "biome.json").
	configName string

	// legacyConfigName is the former config file name (e.g. "rome.json").
	legacyConfigName string

	// dependencyDir is the dependency directory name (e.g. "node_modules").
	dependencyDir string

	// stat is the file existence probe; swapped in tests.
	stat func(string) (os.FileInfo, error)

	logger *slog.Logger
}

// NewProjectLocator creates a locator for the given marker names.
//
// # Inputs
//
//   - configName: Current config file name.
//   - legacyConfigName: Former config file name.
//   - dependencyDir: Dependency directory name used by FindWorkDir.
//   - logger: Structured logger; nil uses slog.Default().
func NewProjectLocator(configName, legacyConfigName, dependencyDir string, logger *slog.Logger) *ProjectLocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectLocator{
		configName:       configName,
		legacyConfigName: legacyConfigName,
		dependencyDir:    dependencyDir,
		stat:             os.Stat,
		logger:           logger,
	}
}

// FindConfig returns the resolved path of the nearest config marker above
// file, searching config file names only.
//
// # Description
//
// At each ancestor directory the legacy config name is probed before the
// current one; a project mid-migration that carries both in one directory
// resolves to the legacy file, which the tool itself still prefers. Across
// directories, closeness to the file wins over name priority.
//
// # Inputs
//
//   - file: Absolute path of the file being checked.
//
// # Outputs
//
//   - string: Full path to the found marker file.
//   - bool: false if no config marker exists anywhere in the ancestor chain.
func (l *ProjectLocator) FindConfig(file string) (string, bool) {
	ctx, ok := l.search(file, []markerProbe{
		{name: l.legacyConfigName, kind: MarkerLegacyConfig, wantDir: false},
		{name: l.configName, kind: MarkerConfig, wantDir: false},
	})
	if !ok {
		return "", false
	}
	return ctx.MarkerPath, true
}

// FindWorkDir returns the project context whose directory should be the
// working directory for the lint invocation.
//
// # Description
//
// Accepts the dependency directory as a third, lowest-priority marker per
// directory level: current config, legacy config, dependency directory.
// When nothing matches anywhere, the invocation defaults to a host-chosen
// directory and ok is false.
//
// # Inputs
//
//   - file: Absolute path of the file being checked.
//
// # Outputs
//
//   - ProjectContext: Directory, marker path and marker kind; zero when !ok.
//   - bool: false if no marker of any kind exists in the ancestor chain.
func (l *ProjectLocator) FindWorkDir(file string) (ProjectContext, bool) {
	return l.search(file, []markerProbe{
		{name: l.configName, kind: MarkerConfig, wantDir: false},
		{name: l.legacyConfigName, kind: MarkerLegacyConfig, wantDir: false},
		{name: l.dependencyDir, kind: MarkerDependencyDir, wantDir: true},
	})
}

// markerProbe is one marker name to try at each directory level.
type markerProbe struct {
	name    string
	kind    MarkerKind
	wantDir bool
}

// search walks ancestors of file from its directory to the root, trying the
// probes in order at each level.
func (l *ProjectLocator) search(file string, probes []markerProbe) (ProjectContext, bool) {
	dir := filepath.Dir(filepath.Clean(file))
	for {
		for _, p := range probes {
			if p.name == "" {
				continue
			}
			candidate := filepath.Join(dir, p.name)
			info, err := l.stat(candidate)
			if err != nil {
				continue
			}
			if info.IsDir() != p.wantDir {
				continue
			}
			l.logger.Debug("project marker found",
				"marker", candidate, "kind", p.kind.String())
			return ProjectContext{Dir: dir, MarkerPath: candidate, Kind: p.kind}, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Root was just probed; the chain is exhausted.
			return ProjectContext{}, false
		}
		dir = parent
	}
}
