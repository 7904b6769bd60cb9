// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Huffarc packs files into a single archive compressed with one
// canonical Huffman code per file, and extracts, lists and verifies
// such archives. It also reports how the codec compares with LZ4 and
// zstd on given inputs (stat).
package main
