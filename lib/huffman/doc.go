// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package huffman implements a multi-file archive codec built on
// canonical Huffman codes.
//
// An archive is a sequence of blocks, one per input file, with no
// archive-level header:
//
//	block      := header filename FILENAME_END payload terminator
//	header     := count:W (symbol:W){count} (lengthCount:W){1..maxLength}
//	terminator := ONE_MORE_FILE | ARCHIVE_END
//
// W is the header field width (9 bits by default). The filename,
// payload and every control symbol are Huffman codes from the block's
// own tree; each block gets a fresh tree built from the byte
// frequencies of that file's name and content.
//
// The header carries the symbols in canonical order and how many
// symbols have each code length. That is enough to rebuild the code:
// [CanonicalTrie] assigns consecutive binary values within each length
// and appends a zero bit when moving to the next length, so encoder
// and decoder derive identical tries from the same (length, symbol)
// list.
//
// Tree construction is deterministic. Leaves are ordered by (weight,
// symbol), merged subtrees take the smaller symbol of their two halves
// as tie-breaker, and the two-queue merge in lib/pqueue resolves equal
// fronts the same way every time, so identical inputs always produce
// identical archives.
//
// [Encoder] reads each input twice through a rewinding
// [bitstream.Reader] (count pass, encode pass) and writes blocks to a
// shared [bitstream.Writer]. [Decoder] reads blocks until
// ARCHIVE_END and hands entries to a [Sink]; any failure aborts the
// whole decode and discards the entry in progress.
package huffman
