// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitstream

import (
	"fmt"
	"strings"
)

// Bit is a single binary digit, either [Zero] or [One]. It doubles as
// a child index in binary tries.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

const wordBits = 64

// Bits is a packed sequence of bits. Bit i lives in words[i/64] at
// position 63-i%64, so the first bit of the sequence is the most
// significant bit of the first word. Bits beyond the length are always
// zero, which lets [Bits.Resize] pad by simply extending the length.
//
// The zero value is an empty sequence ready to use. Bits has value
// semantics only through [Bits.Clone]: copying the struct shares the
// backing words.
type Bits struct {
	words  []uint64
	length int
}

// NewBits returns a sequence of length zero bits.
func NewBits(length int) Bits {
	var bits Bits
	bits.Resize(length)
	return bits
}

// BitsFromUint returns the width low bits of value, most significant
// first. Width must be at most 64.
func BitsFromUint(value uint64, width int) Bits {
	if width < 0 || width > wordBits {
		panic(fmt.Sprintf("bitstream: width %d out of range [0, 64]", width))
	}
	bits := NewBits(width)
	if width > 0 {
		bits.words[0] = value << (wordBits - width)
	}
	return bits
}

// ParseBits parses a string of '0' and '1' characters. Intended for
// tests and diagnostics.
func ParseBits(text string) (Bits, error) {
	var bits Bits
	for index, character := range text {
		switch character {
		case '0':
			bits.Append(Zero)
		case '1':
			bits.Append(One)
		default:
			return Bits{}, fmt.Errorf("invalid bit %q at offset %d", character, index)
		}
	}
	return bits, nil
}

// Len returns the number of bits in the sequence.
func (b Bits) Len() int {
	return b.length
}

// At returns the bit at index.
func (b Bits) At(index int) Bit {
	if index < 0 || index >= b.length {
		panic(fmt.Sprintf("bitstream: bit index %d out of range [0, %d)", index, b.length))
	}
	return Bit(b.words[index/wordBits] >> (wordBits - 1 - index%wordBits) & 1)
}

// Set replaces the bit at index.
func (b *Bits) Set(index int, bit Bit) {
	if index < 0 || index >= b.length {
		panic(fmt.Sprintf("bitstream: bit index %d out of range [0, %d)", index, b.length))
	}
	mask := uint64(1) << (wordBits - 1 - index%wordBits)
	if bit == One {
		b.words[index/wordBits] |= mask
	} else {
		b.words[index/wordBits] &^= mask
	}
}

// Append adds bit to the end of the sequence.
func (b *Bits) Append(bit Bit) {
	b.Resize(b.length + 1)
	if bit == One {
		b.Set(b.length-1, One)
	}
}

// Pop removes and returns the last bit.
func (b *Bits) Pop() Bit {
	last := b.At(b.length - 1)
	b.Resize(b.length - 1)
	return last
}

// Resize changes the length of the sequence. Growing appends zero
// bits; shrinking drops bits from the end.
func (b *Bits) Resize(length int) {
	if length < 0 {
		panic(fmt.Sprintf("bitstream: negative length %d", length))
	}
	wordCount := (length + wordBits - 1) / wordBits
	if length < b.length {
		b.words = b.words[:wordCount]
		if tail := length % wordBits; tail != 0 {
			b.words[wordCount-1] &= ^uint64(0) << (wordBits - tail)
		}
	} else {
		for len(b.words) < wordCount {
			b.words = append(b.words, 0)
		}
	}
	b.length = length
}

// Increment treats the sequence as an unsigned binary number of fixed
// width (first bit most significant) and adds one. It returns false
// when the addition overflows, in which case every bit is now zero.
// An empty sequence always overflows.
func (b *Bits) Increment() bool {
	for index := b.length - 1; index >= 0; index-- {
		if b.At(index) == Zero {
			b.Set(index, One)
			return true
		}
		b.Set(index, Zero)
	}
	return false
}

// Clone returns a copy that shares no storage with b.
func (b Bits) Clone() Bits {
	return Bits{words: append([]uint64(nil), b.words...), length: b.length}
}

// Equal reports whether two sequences have the same length and bits.
func (b Bits) Equal(other Bits) bool {
	if b.length != other.length {
		return false
	}
	for index := range b.words {
		if b.words[index] != other.words[index] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a (not necessarily strict)
// prefix of b.
func (b Bits) HasPrefix(prefix Bits) bool {
	if prefix.length > b.length {
		return false
	}
	for index := 0; index < prefix.length; index++ {
		if b.At(index) != prefix.At(index) {
			return false
		}
	}
	return true
}

// String renders the sequence as '0' and '1' characters.
func (b Bits) String() string {
	var builder strings.Builder
	builder.Grow(b.length)
	for index := 0; index < b.length; index++ {
		builder.WriteByte('0' + byte(b.At(index)))
	}
	return builder.String()
}

// chunks calls emit for each run of up to 64 bits, left-aligned in
// order. Used by the writer to push whole words at a time.
func (b Bits) chunks(emit func(word uint64, width uint8) error) error {
	remaining := b.length
	for _, word := range b.words {
		width := min(remaining, wordBits)
		if err := emit(word>>(wordBits-width), uint8(width)); err != nil {
			return err
		}
		remaining -= width
	}
	return nil
}
