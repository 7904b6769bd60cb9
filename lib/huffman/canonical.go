// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/trie"
)

// MaxCodeLength bounds code lengths: a tree over the whole alphabet
// is at most AlphabetSize-1 levels deep.
const MaxCodeLength = AlphabetSize - 1

// ErrInvalidCodeLengths is returned by [CanonicalTrie] when the
// lengths cannot form a prefix code.
var ErrInvalidCodeLengths = errors.New("code lengths do not form a prefix code")

// CodeLength pairs a symbol with the length of its code.
type CodeLength struct {
	Length int
	Symbol Symbol
}

func compareCodeLengths(a, b CodeLength) int {
	if c := cmp.Compare(a.Length, b.Length); c != 0 {
		return c
	}
	return cmp.Compare(a.Symbol, b.Symbol)
}

// SortCanonical orders entries by (Length, Symbol) ascending, the
// canonical order.
func SortCanonical(entries []CodeLength) {
	slices.SortFunc(entries, compareCodeLengths)
}

// CodeLengths returns the (length, symbol) pair of every terminal in
// code, in canonical order.
func CodeLengths(code *trie.Trie[Symbol]) []CodeLength {
	terminals := code.Terminals()
	entries := make([]CodeLength, 0, len(terminals))
	for _, terminal := range terminals {
		entries = append(entries, CodeLength{Length: terminal.Path.Len(), Symbol: terminal.Value})
	}
	SortCanonical(entries)
	return entries
}

// CanonicalTrie builds the canonical code for entries, which need not
// be sorted. Codes of one length are consecutive binary numbers;
// moving to a longer length appends zero bits to the next free value.
// A single entry of length 0 yields a trie whose root is the terminal.
func CanonicalTrie(entries []CodeLength) (*trie.Trie[Symbol], error) {
	order := slices.Clone(entries)
	SortCanonical(order)

	code := trie.New[Symbol]()
	var path bitstream.Bits
	var seen [AlphabetSize]bool
	exhausted := false

	for index, entry := range order {
		if entry.Symbol > ArchiveEnd {
			return nil, fmt.Errorf("symbol %d: %w", entry.Symbol, ErrInvalidCodeLengths)
		}
		if seen[entry.Symbol] {
			return nil, fmt.Errorf("symbol %s listed twice: %w", entry.Symbol, ErrInvalidCodeLengths)
		}
		seen[entry.Symbol] = true
		if entry.Length < 0 || entry.Length > MaxCodeLength {
			return nil, fmt.Errorf("symbol %s has length %d: %w", entry.Symbol, entry.Length, ErrInvalidCodeLengths)
		}
		// Once the counter wraps every code of the current length is
		// taken, and any longer code would extend an existing one.
		if exhausted {
			return nil, fmt.Errorf("no code left for entry %d (%s, length %d): %w",
				index, entry.Symbol, entry.Length, ErrInvalidCodeLengths)
		}

		path.Resize(entry.Length)
		if _, err := code.Insert(path, entry.Symbol); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCodeLengths, err)
		}
		exhausted = !path.Increment()
	}
	return code, nil
}

// Canonicalize keeps the code lengths of tree and replaces its code
// values with the canonical assignment.
func Canonicalize(tree *trie.Trie[Symbol]) (*trie.Trie[Symbol], error) {
	return CanonicalTrie(CodeLengths(tree))
}
