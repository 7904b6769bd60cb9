// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package trie implements a binary prefix tree that maps bit paths to
// values. It is the code table of the Huffman codec: the encoder joins
// single-value tries into a tree with [Merge], and the decoder walks
// the tree one input bit at a time with [Trie.TraverseOnce].
//
// Every node is either terminal (it holds a value and has no children)
// or internal (it has up to two children indexed by bit). [Trie.Insert]
// refuses paths that would break that rule, so the set of terminal
// paths is always prefix-free.
//
// Nodes are owned by exactly one trie. [Merge] moves the roots of its
// arguments into the result and leaves the arguments empty.
package trie

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
)

// ErrNotFound is returned by [Trie.TraverseOnce] when the bits lead to
// a missing child before any terminal is reached.
var ErrNotFound = errors.New("no terminal on path")

// ErrPrefixConflict is returned by [Trie.Insert] when the path passes
// through a terminal node, or ends on a node that already has
// children.
var ErrPrefixConflict = errors.New("path conflicts with an existing code")

type node[V any] struct {
	children [2]*node[V]
	terminal bool
	value    V
}

func (n *node[V]) hasChildren() bool {
	return n.children[0] != nil || n.children[1] != nil
}

// Trie is a binary prefix tree. The zero value is an empty trie.
type Trie[V any] struct {
	root      *node[V]
	terminals int
}

// Terminal is a terminal node's path from the root and its value.
type Terminal[V any] struct {
	Path  bitstream.Bits
	Value V
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{}
}

// Leaf returns a trie whose root is a terminal holding value: the
// zero-length code used for single-value tries.
func Leaf[V any](value V) *Trie[V] {
	trie := New[V]()
	if _, err := trie.Insert(bitstream.Bits{}, value); err != nil {
		panic("trie: inserting into an empty trie cannot conflict")
	}
	return trie
}

// Insert makes the node at path terminal with value, creating internal
// nodes along the way. It returns true when a new terminal was created
// and false when an existing terminal was overwritten; only new
// terminals count toward [Trie.TerminalCount].
func (t *Trie[V]) Insert(path bitstream.Bits, value V) (bool, error) {
	if t.root == nil {
		t.root = &node[V]{}
	}
	current := t.root
	for index := range path.Len() {
		if current.terminal {
			return false, fmt.Errorf("inserting %s: terminal at depth %d: %w", path, index, ErrPrefixConflict)
		}
		bit := path.At(index)
		if current.children[bit] == nil {
			current.children[bit] = &node[V]{}
		}
		current = current.children[bit]
	}
	if current.hasChildren() {
		return false, fmt.Errorf("inserting %s: node has children: %w", path, ErrPrefixConflict)
	}
	current.value = value
	if current.terminal {
		return false, nil
	}
	current.terminal = true
	t.terminals++
	return true, nil
}

// Merge returns a trie whose root has children[i]'s root as child i.
// At most two children are accepted. The arguments are emptied: their
// nodes now belong to the result. An empty or nil argument leaves its
// slot unset.
func Merge[V any](children ...*Trie[V]) *Trie[V] {
	if len(children) > 2 {
		panic(fmt.Sprintf("trie: cannot merge %d subtrees into a binary node", len(children)))
	}
	merged := &Trie[V]{root: &node[V]{}}
	for index, child := range children {
		if child == nil {
			continue
		}
		merged.root.children[index] = child.root
		merged.terminals += child.terminals
		child.root = nil
		child.terminals = 0
	}
	return merged
}

// TraverseOnce walks from the root, taking the next bit from next at
// every internal node, until it reaches a terminal. It returns
// [ErrNotFound] when a bit selects a missing child, and any error from
// next unchanged. A trie whose root is terminal returns its value
// without consuming bits.
func (t *Trie[V]) TraverseOnce(next func() (bitstream.Bit, error)) (V, error) {
	var zero V
	current := t.root
	if current == nil {
		return zero, ErrNotFound
	}
	for !current.terminal {
		bit, err := next()
		if err != nil {
			return zero, err
		}
		if bit > bitstream.One {
			return zero, fmt.Errorf("bit value %d: %w", bit, ErrNotFound)
		}
		current = current.children[bit]
		if current == nil {
			return zero, ErrNotFound
		}
	}
	return current.value, nil
}

// Terminals lists every terminal with its path, depth first, child 0
// before child 1. For a canonical code this is ascending code order.
func (t *Trie[V]) Terminals() []Terminal[V] {
	terminals := make([]Terminal[V], 0, t.terminals)
	if t.root == nil {
		return terminals
	}
	var path bitstream.Bits
	var walk func(current *node[V])
	walk = func(current *node[V]) {
		if current.terminal {
			terminals = append(terminals, Terminal[V]{Path: path.Clone(), Value: current.value})
			return
		}
		for bit, child := range current.children {
			if child == nil {
				continue
			}
			path.Append(bitstream.Bit(bit))
			walk(child)
			path.Pop()
		}
	}
	walk(t.root)
	return terminals
}

// TerminalCount returns the number of terminals in the trie.
func (t *Trie[V]) TerminalCount() int {
	return t.terminals
}
