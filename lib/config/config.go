// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "HUFFARC_CONFIG"

// Config is the complete huffarc configuration.
type Config struct {
	// Codec configures the archive format and I/O.
	Codec CodecConfig `yaml:"codec" json:"codec"`

	// Decompress configures extraction.
	Decompress DecompressConfig `yaml:"decompress" json:"decompress"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log" json:"log"`
}

// CodecConfig configures encoding and decoding.
type CodecConfig struct {
	// FieldWidth is the width in bits of numeric header fields. An
	// archive must be decoded with the width it was encoded with.
	// Default: 9
	FieldWidth int `yaml:"field_width" json:"field_width"`

	// BufferSize is the I/O chunk size in bytes for archive and
	// entry files.
	// Default: 32768
	BufferSize int `yaml:"buffer_size" json:"buffer_size"`
}

// DecompressConfig configures extraction.
type DecompressConfig struct {
	// OutputDir is where entries are written when --output-dir is
	// not given.
	// Default: .
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level" json:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Codec: CodecConfig{
			FieldWidth: 9,
			BufferSize: 32 * 1024,
		},
		Decompress: DecompressConfig{
			OutputDir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by HUFFARC_CONFIG, or returns [Default]
// when the variable is unset or empty.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, layered over [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config file %s: unsupported extension %q (want .yaml, .yml, .json or .jsonc)", path, extension)
	}
	return nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Decompress.OutputDir = expandVars(c.Decompress.OutputDir, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

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

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevel returns the slog level named by Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	level, ok := logLevels[strings.ToLower(c.Log.Level)]
	if !ok {
		return 0, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	return level, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Codec.FieldWidth < 9 || c.Codec.FieldWidth > 64 {
		errs = append(errs, fmt.Errorf("codec.field_width must be between 9 and 64; got %d", c.Codec.FieldWidth))
	}
	if c.Codec.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("codec.buffer_size must be positive; got %d", c.Codec.BufferSize))
	}
	if c.Decompress.OutputDir == "" {
		errs = append(errs, fmt.Errorf("decompress.output_dir is required"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
