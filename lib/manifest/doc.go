// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest records what an archive contains without writing
// any entry to disk.
//
// [Sink] plugs into a [huffman.Decoder] in place of a directory sink:
// each entry's bytes stream through a BLAKE3 keyed hasher and only the
// name, size and digest are kept. The resulting [Manifest] serializes
// as JSON for people and as deterministic CBOR (via lib/codec) for
// later comparison with [Compare].
//
// Digests use a domain key, so an entry digest never equals a plain
// BLAKE3 hash of the same bytes computed for another purpose.
package manifest
