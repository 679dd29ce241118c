// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/digest/lib/algorithm"
	"github.com/bureau-foundation/digest/lib/checkpoint"
	"github.com/bureau-foundation/digest/lib/input"
	"github.com/bureau-foundation/digest/lib/sumfile"
)

// EnvironmentVariable names the configuration file when --config is
// not given.
const EnvironmentVariable = "BUREAU_DIGEST_CONFIG"

// minimumInterval bounds checkpoint.interval from below so a typo does
// not turn every block into a disk write.
const minimumInterval = 1 << 20

// Config is the bureau-digest configuration.
type Config struct {
	// Algorithm is the default hash algorithm name.
	Algorithm string `yaml:"algorithm" json:"algorithm"`

	// Jobs is how many files sum and check hash concurrently.
	// Default: number of CPUs.
	Jobs int `yaml:"jobs" json:"jobs"`

	// Decompress is "auto" (decode zstd, lz4, gzip) or "raw".
	Decompress string `yaml:"decompress" json:"decompress"`

	// Style is the checksum line format written by sum: "gnu" or "bsd".
	Style string `yaml:"style" json:"style"`

	Checkpoint CheckpointConfig `yaml:"checkpoint" json:"checkpoint"`
}

// CheckpointConfig configures resumable hashing.
type CheckpointConfig struct {
	// Interval is how many input bytes pass between checkpoint writes.
	// Default: 64MiB
	Interval ByteSize `yaml:"interval" json:"interval"`

	// Recipients are age X25519 public keys. When set, checkpoint files
	// are sealed to them.
	Recipients []string `yaml:"recipients" json:"recipients"`

	// Identities are age identity files used to open sealed
	// checkpoints.
	Identities []string `yaml:"identities" json:"identities"`
}

// ByteSize is a byte count that unmarshals from either an integer or a
// human-readable size.
type ByteSize uint64

// UnmarshalYAML accepts 67108864, "64MiB", "64 MB", and similar.
func (s *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: byte size must be a scalar", node.Line)
	}
	value, err := humanize.ParseBytes(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: parsing byte size %q: %w", node.Line, node.Value, err)
	}
	*s = ByteSize(value)
	return nil
}

// UnmarshalJSON accepts a JSON number or a human-readable string.
func (s *ByteSize) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		text = string(data)
	}
	value, err := humanize.ParseBytes(text)
	if err != nil {
		return fmt.Errorf("parsing byte size %s: %w", data, err)
	}
	*s = ByteSize(value)
	return nil
}

// String formats the size with IEC units.
func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}

// Set parses a flag value. ByteSize implements pflag.Value.
func (s *ByteSize) Set(text string) error {
	value, err := humanize.ParseBytes(text)
	if err != nil {
		return err
	}
	*s = ByteSize(value)
	return nil
}

// Type names the flag value type in help output.
func (s *ByteSize) Type() string { return "size" }

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Algorithm:  algorithm.Default,
		Jobs:       runtime.NumCPU(),
		Decompress: input.ModeAuto.String(),
		Style:      sumfile.StyleGNU.String(),
		Checkpoint: CheckpointConfig{
			Interval: 64 << 20,
		},
	}
}

// Resolve loads the file named by flagPath, or by BUREAU_DIGEST_CONFIG
// when flagPath is empty. With neither set it returns Default.
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

// Load loads configuration from the BUREAU_DIGEST_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your config file, or use --config", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path over the defaults and
// validates it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	for i, path := range c.Checkpoint.Identities {
		c.Checkpoint.Identities[i] = expandVars(path, vars)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := algorithm.Lookup(c.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("algorithm: %w", err))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if _, err := input.ParseMode(c.Decompress); err != nil {
		errs = append(errs, fmt.Errorf("decompress: %w", err))
	}
	if _, err := sumfile.ParseStyle(c.Style); err != nil {
		errs = append(errs, fmt.Errorf("style: %w", err))
	}
	if c.Checkpoint.Interval < minimumInterval {
		errs = append(errs, fmt.Errorf("checkpoint.interval must be at least %s, got %s",
			ByteSize(minimumInterval), c.Checkpoint.Interval))
	}
	if _, err := checkpoint.ParseRecipients(c.Checkpoint.Recipients); err != nil {
		errs = append(errs, fmt.Errorf("checkpoint.recipients: %w", err))
	}
	for _, path := range c.Checkpoint.Identities {
		if path == "" {
			errs = append(errs, errors.New("checkpoint.identities: empty path"))
		}
	}

	return errors.Join(errs...)
}
