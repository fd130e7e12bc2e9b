// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/BiomeBridge/cmd/biomebridge/internal/adapter"
)

// BridgeConfig is the on-disk configuration of the bridge.
//
// Every field defaults to the Biome constants the adapter was written
// against; the file exists so users can track the tool's renames and flag
// changes without waiting for a release.
type BridgeConfig struct {
	// Tool: the external linter binary and its version contract
	Tool ToolConfig `yaml:"tool"`

	// Markers: filesystem entries that signal a project root
	Markers MarkerConfig `yaml:"markers"`

	// Output: noise the tool mixes into its JSON reporter stream
	Output OutputConfig `yaml:"output"`

	// Logging: level and optional log directory
	Logging LoggingConfig `yaml:"logging"`

	// Watch: settings for the watch command
	Watch WatchConfig `yaml:"watch"`
}

type ToolConfig struct {
	Name           string `yaml:"name" validate:"required"`                    // e.g. biome
	MinimumVersion string `yaml:"minimum_version" validate:"required,semver"` // e.g. 1.6.0
	VersionFlag    string `yaml:"version_flag" validate:"required"`           // e.g. --version
	VersionLabel   string `yaml:"version_label" validate:"required"`          // e.g. "Version:"
	Subcommand     string `yaml:"subcommand" validate:"required"`             // e.g. lint
	ReporterFlag   string `yaml:"reporter_flag" validate:"required"`          // e.g. --reporter=json
	ProbeTimeout   string `yaml:"probe_timeout" validate:"required"`          // e.g. 5s
	CheckTimeout   string `yaml:"check_timeout" validate:"required"`          // e.g. 30s
}

type MarkerConfig struct {
	Config        string `yaml:"config" validate:"required"` // e.g. biome.json
	LegacyConfig  string `yaml:"legacy_config"`              // e.g. rome.json
	DependencyDir string `yaml:"dependency_dir"`             // e.g. node_modules
}

type OutputConfig struct {
	Banner        string `yaml:"banner"`         // advisory banner to strip
	SectionMarker string `yaml:"section_marker"` // start of the human summary
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"` // e.g. info
	Dir   string `yaml:"dir"`                                         // e.g. ~/.biomebridge/logs
}

type WatchConfig struct {
	// Extensions are the file suffixes worth re-checking on change.
	Extensions []string `yaml:"extensions" validate:"min=1,dive,startswith=."`

	// Debounce is the minimum interval between lint runs per burst of
	// filesystem events.
	Debounce string `yaml:"debounce" validate:"required"`
}

// DefaultConfig returns the Biome defaults the adapter ships with.
func DefaultConfig() BridgeConfig {
	opts := adapter.DefaultOptions()
	return BridgeConfig{
		Tool: ToolConfig{
			Name:           opts.Tool,
			MinimumVersion: opts.MinVersion,
			VersionFlag:    opts.VersionFlag,
			VersionLabel:   opts.VersionLabel,
			Subcommand:     opts.Subcommand,
			ReporterFlag:   opts.ReporterFlag,
			ProbeTimeout:   opts.ProbeTimeout.String(),
			CheckTimeout:   opts.CheckTimeout.String(),
		},
		Markers: MarkerConfig{
			Config:        opts.ConfigName,
			LegacyConfig:  opts.LegacyConfigName,
			DependencyDir: opts.DependencyDir,
		},
		Output: OutputConfig{
			Banner:        opts.Banner,
			SectionMarker: opts.SectionMarker,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".json", ".jsonc"},
			Debounce:   "500ms",
		},
	}
}

// Validate checks structural constraints via validator tags plus the
// duration fields, which carry free-form strings in YAML.
func (c *BridgeConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for name, value := range map[string]string{
		"tool.probe_timeout": c.Tool.ProbeTimeout,
		"tool.check_timeout": c.Tool.CheckTimeout,
		"watch.debounce":     c.Watch.Debounce,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid configuration: %s: %w", name, err)
		}
	}
	return nil
}

// AdapterOptions maps the config onto adapter options.
//
// The duration fields are parsed here rather than trusted: a config that
// skipped Validate would otherwise map onto zero timeouts, and a
// zero-timeout context expires before the probe subprocess can start.
func (c *BridgeConfig) AdapterOptions() (adapter.Options, error) {
	probeTimeout, err := time.ParseDuration(c.Tool.ProbeTimeout)
	if err != nil {
		return adapter.Options{}, fmt.Errorf("tool.probe_timeout: %w", err)
	}
	checkTimeout, err := time.ParseDuration(c.Tool.CheckTimeout)
	if err != nil {
		return adapter.Options{}, fmt.Errorf("tool.check_timeout: %w", err)
	}
	return adapter.Options{
		Tool:         c.Tool.Name,
		CheckerID:    c.Tool.Name,
		MinVersion:   c.Tool.MinimumVersion,
		VersionFlag:  c.Tool.VersionFlag,
		VersionLabel: c.Tool.VersionLabel,
		Subcommand:   c.Tool.Subcommand,
		ReporterFlag: c.Tool.ReporterFlag,

		ConfigName:       c.Markers.Config,
		LegacyConfigName: c.Markers.LegacyConfig,
		DependencyDir:    c.Markers.DependencyDir,

		Banner:        c.Output.Banner,
		SectionMarker: c.Output.SectionMarker,

		ProbeTimeout: probeTimeout,
		CheckTimeout: checkTimeout,
	}, nil
}

// DebounceInterval returns the parsed watch debounce.
func (c *BridgeConfig) DebounceInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
