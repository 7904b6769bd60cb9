// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import "fmt"

// Symbol is a member of the extended byte alphabet: values 0 through
// 255 are literal bytes, the three values above them frame the
// sub-streams of an archive block.
type Symbol uint16

const (
	// FilenameEnd terminates the filename sub-stream.
	FilenameEnd Symbol = 256

	// OneMoreFile terminates a payload that is followed by another
	// block.
	OneMoreFile Symbol = 257

	// ArchiveEnd terminates the payload of the last block.
	ArchiveEnd Symbol = 258

	// AlphabetSize is the number of distinct symbols.
	AlphabetSize = int(ArchiveEnd) + 1
)

const (
	// LiteralWidth is the width in bits of a literal byte.
	LiteralWidth uint8 = 8

	// DefaultFieldWidth is the width in bits of every numeric header
	// field. Nine bits hold the largest symbol (258) and the largest
	// symbol count (259).
	DefaultFieldWidth uint8 = 9

	// MinFieldWidth is the narrowest header field that can still
	// represent the control symbols.
	MinFieldWidth uint8 = 9

	// MaxFieldWidth is the widest header field the bit stream
	// supports.
	MaxFieldWidth uint8 = 64
)

// IsLiteral reports whether s stands for a plain byte.
func (s Symbol) IsLiteral() bool {
	return s <= 0xFF
}

// String returns the control symbol name, or the byte value for
// literals.
func (s Symbol) String() string {
	switch s {
	case FilenameEnd:
		return "FILENAME_END"
	case OneMoreFile:
		return "ONE_MORE_FILE"
	case ArchiveEnd:
		return "ARCHIVE_END"
	}
	if s.IsLiteral() {
		return fmt.Sprintf("byte(%#02x)", uint16(s))
	}
	return fmt.Sprintf("invalid(%d)", uint16(s))
}

// Frequencies counts occurrences per symbol.
type Frequencies [AlphabetSize]uint64

// Distinct returns how many symbols occur at least once.
func (f *Frequencies) Distinct() int {
	count := 0
	for _, occurrences := range f {
		if occurrences > 0 {
			count++
		}
	}
	return count
}
