// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// every huffarc package that writes CBOR.
//
// huffarc uses JSON for human-facing output (--json on every command)
// and CBOR for machine-facing manifests (list --format cbor, and the
// manifests verify reads back). The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Listing the same archive twice
// produces identical manifest bytes, so manifests can be compared and
// hashed directly.
//
// Types shared with JSON output carry only `json` struct tags;
// fxamacker/cbor reads them when `cbor` tags are absent, so a single
// tag controls field naming in both formats.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
