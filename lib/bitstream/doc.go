// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitstream provides bit-granular reading and writing over
// byte streams, plus [Bits], a packed bit sequence used for code words
// and trie paths.
//
// Bit order is a wire-format contract: within every byte the first bit
// read or written is the most significant bit. Multi-bit integers are
// composed most-significant bit first. The host byte order never
// affects the stream.
//
// [Reader] buffers the source in fixed-size chunks, reports
// end-of-source with [Reader.IsAtEnd], and can rewind to the start
// with [Reader.Reload] so that callers can make two passes over a
// file without holding it in memory. Reading past the end fails with
// [ErrStreamExhausted].
//
// [Writer] packs bits into bytes in the same order. [Writer.Clear]
// drops everything buffered and truncates a file target, and
// [Writer.Close] pads the final partial byte with zero bits and
// flushes.
//
// The bit engine underneath both types is github.com/icza/bitio; this
// package adds the chunk sizing, end detection, rewind, truncation and
// bookkeeping the archive format needs.
package bitstream
