// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for huffarc.
//
// Configuration comes from a single file named by the HUFFARC_CONFIG
// environment variable (via [Load]) or a --config flag (via
// [LoadFile]). With neither, every command runs on [Default]. There
// is no ~/.config discovery and no automatic file search.
//
// Files ending in .yaml or .yml are YAML. Files ending in .json or
// .jsonc are JSON with comments and trailing commas allowed. Fields
// missing from the file keep their defaults.
//
// ${VAR} and ${VAR:-default} patterns are expanded in
// decompress.output_dir after loading. No environment variable
// overrides a config value directly.
//
// This package depends on no other huffarc packages.
package config
