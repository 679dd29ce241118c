// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/bureau-foundation/digest/lib/config"
)

// Common holds the flags every bureau-digest command accepts. Embed it
// in a params struct.
type Common struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $BUREAU_DIGEST_CONFIG)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log progress at debug level"`
}

// LogLevel returns slog.LevelDebug with --verbose, else slog.LevelInfo.
func (c *Common) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// LoadConfig resolves the configuration from --config, the environment,
// or the built-in defaults.
func (c *Common) LoadConfig() (*config.Config, error) {
	return config.Resolve(c.ConfigPath)
}
