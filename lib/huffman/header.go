// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"fmt"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/trie"
)

// WriteHeader writes the block header for code: the symbol count, the
// symbols in canonical order, and for each length from 1 to the
// longest code, how many symbols have that length. code must be
// canonical (see [Canonicalize]) for the payload to decode against
// the trie the reader rebuilds.
func WriteHeader(writer *bitstream.Writer, code *trie.Trie[Symbol], fieldWidth uint8) error {
	entries := CodeLengths(code)

	if err := writer.WriteBits(uint64(len(entries)), fieldWidth); err != nil {
		return fmt.Errorf("writing symbol count: %w", err)
	}
	for _, entry := range entries {
		if err := writer.WriteBits(uint64(entry.Symbol), fieldWidth); err != nil {
			return fmt.Errorf("writing symbol %s: %w", entry.Symbol, err)
		}
	}

	if len(entries) == 0 {
		return nil
	}
	histogram := make([]uint64, entries[len(entries)-1].Length+1)
	for _, entry := range entries {
		histogram[entry.Length]++
	}
	for length := 1; length < len(histogram); length++ {
		if err := writer.WriteBits(histogram[length], fieldWidth); err != nil {
			return fmt.Errorf("writing count for length %d: %w", length, err)
		}
	}
	return nil
}

// ReadHeader reads a block header and rebuilds the canonical trie it
// describes. A count of one symbol means a zero-length code and no
// length counts follow.
func ReadHeader(reader *bitstream.Reader, fieldWidth uint8) (*trie.Trie[Symbol], error) {
	count, err := reader.ReadBits(fieldWidth)
	if err != nil {
		return nil, fmt.Errorf("reading symbol count: %w", err)
	}
	if count == 0 || count > uint64(AlphabetSize) {
		return nil, fmt.Errorf("symbol count %d: %w", count, ErrMalformedHeader)
	}

	entries := make([]CodeLength, count)
	for index := range entries {
		value, err := reader.ReadBits(fieldWidth)
		if err != nil {
			return nil, fmt.Errorf("reading symbol %d of %d: %w", index+1, count, err)
		}
		if value > uint64(ArchiveEnd) {
			return nil, fmt.Errorf("symbol value %d: %w", value, ErrMalformedHeader)
		}
		entries[index].Symbol = Symbol(value)
	}

	if count > 1 {
		assigned := uint64(0)
		for length := 1; assigned < count; length++ {
			if uint64(length) >= count {
				return nil, fmt.Errorf("code length %d exceeds %d symbols: %w", length, count, ErrMalformedHeader)
			}
			withLength, err := reader.ReadBits(fieldWidth)
			if err != nil {
				return nil, fmt.Errorf("reading count for length %d: %w", length, err)
			}
			if withLength > count-assigned {
				return nil, fmt.Errorf("%d symbols of length %d with %d left: %w",
					withLength, length, count-assigned, ErrMalformedHeader)
			}
			for range withLength {
				entries[assigned].Length = length
				assigned++
			}
		}
	}

	code, err := CanonicalTrie(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}
	return code, nil
}
