// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/huffarc/lib/config"
)

// ConfigFlags adds --config and --verbose to a params struct and
// turns them into a validated configuration and a logger. Implements
// [FlagBinder] so the --config default can come from HUFFARC_CONFIG.
//
// Exported so that embedded struct fields are visible to reflection in
// [FlagsFromParams].
type ConfigFlags struct {
	ConfigPath string
	Verbose    bool
}

// AddFlags registers --config (default $HUFFARC_CONFIG) and --verbose.
func (c *ConfigFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", os.Getenv(config.EnvironmentVariable),
		"configuration file (.yaml, .yml, .json or .jsonc)")
	flagSet.BoolVarP(&c.Verbose, "verbose", "v", false, "log per-block detail (debug level)")
}

// Load reads and validates the configuration and builds the command
// logger. Without a config file the defaults apply.
func (c *ConfigFlags) Load() (*config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if c.ConfigPath != "" {
		loaded, err := config.LoadFile(c.ConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", c.ConfigPath, err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	return cfg, NewCommandLogger(level), nil
}
