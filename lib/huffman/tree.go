// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"cmp"
	"slices"

	"github.com/bureau-foundation/huffarc/lib/pqueue"
	"github.com/bureau-foundation/huffarc/lib/trie"
)

// weightedTree is a subtree waiting to be merged. tieBreak is the
// smallest symbol in the subtree.
type weightedTree struct {
	tree     *trie.Trie[Symbol]
	weight   uint64
	tieBreak Symbol
}

func compareWeighted(a, b weightedTree) int {
	if c := cmp.Compare(a.weight, b.weight); c != 0 {
		return c
	}
	return cmp.Compare(a.tieBreak, b.tieBreak)
}

func lessWeighted(a, b weightedTree) bool {
	return compareWeighted(a, b) < 0
}

// BuildTree builds a Huffman tree over every symbol with a non-zero
// count. The first subtree extracted in each merge becomes child 0.
// A single symbol yields a terminal root (a zero-length code); no
// symbols yield an empty trie.
func BuildTree(frequencies *Frequencies) *trie.Trie[Symbol] {
	leaves := make([]weightedTree, 0, frequencies.Distinct())
	for symbol, occurrences := range frequencies {
		if occurrences == 0 {
			continue
		}
		leaves = append(leaves, weightedTree{
			tree:     trie.Leaf(Symbol(symbol)),
			weight:   occurrences,
			tieBreak: Symbol(symbol),
		})
	}
	if len(leaves) == 0 {
		return trie.New[Symbol]()
	}
	slices.SortFunc(leaves, compareWeighted)

	queue := pqueue.New(lessWeighted)
	for _, leaf := range leaves {
		queue.Push(leaf)
	}

	for queue.Size() > 1 {
		first, _ := queue.ExtractMin()
		second, _ := queue.ExtractMin()
		queue.Push(weightedTree{
			tree:     trie.Merge(first.tree, second.tree),
			weight:   first.weight + second.weight,
			tieBreak: min(first.tieBreak, second.tieBreak),
		})
	}

	root, _ := queue.ExtractMin()
	return root.tree
}
