// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pqueue provides [Monotone], a two-queue priority queue with
// O(1) push and extract for the access pattern of Huffman tree
// construction.
//
// The pattern: every leaf is pushed first, in non-decreasing order;
// afterwards each step extracts the two smallest elements and pushes
// their combination, whose weight never falls below anything
// previously combined. Under that pattern the leaves stay sorted in one
// FIFO and the combinations stay sorted in the other, so the minimum
// is always at one of the two fronts.
//
// Precondition, not checked at run time: each internal FIFO must stay
// non-decreasing. Arbitrary push orders break it and the queue then
// stops behaving as a priority queue. Use container/heap for general
// workloads.
package pqueue

// Monotone is a priority queue ordered by less. The zero value is not
// usable; create one with [New].
type Monotone[T any] struct {
	less   func(a, b T) bool
	first  fifo[T]
	second fifo[T]
}

// New returns an empty queue ordered by less.
func New[T any](less func(a, b T) bool) *Monotone[T] {
	return &Monotone[T]{less: less}
}

// Push adds value. It goes to the first FIFO when that FIFO is empty
// or value is not less than its tail, and to the second FIFO
// otherwise.
func (q *Monotone[T]) Push(value T) {
	if tail, ok := q.first.back(); !ok || !q.less(value, tail) {
		q.first.push(value)
		return
	}
	q.second.push(value)
}

// Top returns the smallest element without removing it. The boolean is
// false when the queue is empty.
func (q *Monotone[T]) Top() (T, bool) {
	source := q.minimumSource()
	if source == nil {
		var zero T
		return zero, false
	}
	value, _ := source.front()
	return value, true
}

// ExtractMin removes and returns the smallest element. The boolean is
// false when the queue is empty. When the two fronts compare equal
// the second FIFO's front is taken.
func (q *Monotone[T]) ExtractMin() (T, bool) {
	source := q.minimumSource()
	if source == nil {
		var zero T
		return zero, false
	}
	return source.pop(), true
}

// Size returns the number of queued elements.
func (q *Monotone[T]) Size() int {
	return q.first.size() + q.second.size()
}

// IsEmpty reports whether the queue holds no elements.
func (q *Monotone[T]) IsEmpty() bool {
	return q.Size() == 0
}

func (q *Monotone[T]) minimumSource() *fifo[T] {
	firstFront, firstOK := q.first.front()
	secondFront, secondOK := q.second.front()
	switch {
	case !firstOK && !secondOK:
		return nil
	case !firstOK:
		return &q.second
	case !secondOK:
		return &q.first
	case q.less(firstFront, secondFront):
		return &q.first
	default:
		return &q.second
	}
}

// fifo is a slice-backed queue. Popped slots are reclaimed once they
// make up more than half of the backing array.
type fifo[T any] struct {
	items []T
	head  int
}

func (f *fifo[T]) push(value T) {
	f.items = append(f.items, value)
}

func (f *fifo[T]) size() int {
	return len(f.items) - f.head
}

func (f *fifo[T]) front() (T, bool) {
	if f.size() == 0 {
		var zero T
		return zero, false
	}
	return f.items[f.head], true
}

func (f *fifo[T]) back() (T, bool) {
	if f.size() == 0 {
		var zero T
		return zero, false
	}
	return f.items[len(f.items)-1], true
}

func (f *fifo[T]) pop() T {
	var zero T
	value := f.items[f.head]
	f.items[f.head] = zero
	f.head++
	if f.head == len(f.items) {
		f.items = f.items[:0]
		f.head = 0
	} else if f.head > len(f.items)/2 {
		f.items = append(f.items[:0], f.items[f.head:]...)
		f.head = 0
	}
	return value
}
