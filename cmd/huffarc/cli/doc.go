// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for huffarc.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a params struct whose tagged fields
// become flags (see [BindFlags]), and a Run function. The tree is
// assembled in cmd/huffarc/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing
// and help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (distance <= 3).
//
// Shared params: [JSONOutput] adds --json, [ConfigFlags] adds
// --config and --verbose. [NewCommandLogger] builds the slog logger
// every command logs through.
package cli
