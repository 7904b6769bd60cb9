// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for huffarc packages.
//
// [WriteFiles] materializes a map of relative paths to contents below
// a directory, creating parent directories as needed. [ReadTree] is
// its inverse: it walks a directory and returns every regular file's
// relative path (slash-separated) and content, so a test can compare a
// decoded tree against its fixture in one step. [RandomBytes] returns
// deterministic pseudo-random content for a given seed.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no huffarc-internal dependencies.
package testutil
