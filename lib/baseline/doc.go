// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package baseline measures general-purpose compressors against the
// same input the Huffman codec sees, so archive sizes can be put in
// context.
//
// Two algorithms are supported: LZ4 block compression (fast, modest
// ratio) and zstd at its default level (better ratio, more CPU). Both
// are run whole-file in memory. [Measure] compresses, decompresses and
// compares each result before reporting its size, so a reported size
// always corresponds to output that round-trips.
package baseline
