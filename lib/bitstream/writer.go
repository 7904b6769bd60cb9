// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitstream

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/icza/bitio"
)

// Writer packs bits into bytes, first bit into the most significant
// position, and writes them to a target. Writer is not safe for
// concurrent use.
type Writer struct {
	name   string
	target io.Writer
	file   *os.File

	bufferSize int
	buffered   *bufio.Writer
	bits       *bitio.Writer

	bitsWritten uint64
}

// Create creates or truncates the file at path and returns a Writer
// that owns it. [Writer.Close] flushes and closes the file.
func Create(path string, bufferSize int) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(file, path, bufferSize)
	writer.file = file
	return writer, nil
}

// NewWriter returns a Writer over target. The caller keeps ownership
// of target; [Writer.Close] flushes but does not close it.
func NewWriter(target io.Writer, name string, bufferSize int) *Writer {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	writer := &Writer{name: name, target: target, bufferSize: bufferSize}
	writer.reset()
	return writer
}

func (w *Writer) reset() {
	w.buffered = bufio.NewWriterSize(w.target, w.bufferSize)
	w.bits = bitio.NewWriter(w.buffered)
	w.bitsWritten = 0
}

// WriteBit appends one bit.
func (w *Writer) WriteBit(bit Bit) error {
	if err := w.bits.WriteBool(bit == One); err != nil {
		return fmt.Errorf("writing %s: %w", w.name, err)
	}
	w.bitsWritten++
	return nil
}

// WriteBits appends the width low bits of value, most significant
// first. Width must be at most 64.
func (w *Writer) WriteBits(value uint64, width uint8) error {
	if width > wordBits {
		return fmt.Errorf("write width %d exceeds 64 bits", width)
	}
	if width == 0 {
		return nil
	}
	if width < wordBits {
		value &= uint64(1)<<width - 1
	}
	if err := w.bits.WriteBits(value, width); err != nil {
		return fmt.Errorf("writing %s: %w", w.name, err)
	}
	w.bitsWritten += uint64(width)
	return nil
}

// WriteCode appends every bit of code in order.
func (w *Writer) WriteCode(code Bits) error {
	return code.chunks(w.WriteBits)
}

// BitsWritten returns the number of bits written since the writer was
// created or last cleared, not counting final padding.
func (w *Writer) BitsWritten() uint64 {
	return w.bitsWritten
}

// Name returns the name the writer was created with.
func (w *Writer) Name() string {
	return w.name
}

// Clear discards every buffered bit. When the writer owns a file, the
// file is truncated to zero length and writing restarts at offset 0;
// bytes already flushed to other targets cannot be recalled.
func (w *Writer) Clear() error {
	if w.file != nil {
		if err := w.file.Truncate(0); err != nil {
			return fmt.Errorf("truncating %s: %w", w.name, err)
		}
		if _, err := w.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewinding %s: %w", w.name, err)
		}
	}
	w.reset()
	return nil
}

// Close pads the last partial byte with zero bits, flushes everything
// to the target, and closes the file if the writer owns one.
func (w *Writer) Close() error {
	flushErr := w.bits.Close()
	if flushErr == nil {
		flushErr = w.buffered.Flush()
	}
	if w.file != nil {
		closeErr := w.file.Close()
		w.file = nil
		if flushErr == nil {
			flushErr = closeErr
		}
	}
	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", w.name, flushErr)
	}
	return nil
}
