// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bitstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/icza/bitio"
)

// DefaultBufferSize is the chunk size, in bytes, used when a caller
// passes a non-positive buffer size.
const DefaultBufferSize = 32 * 1024

// ErrStreamExhausted is returned when a read needs more bits than the
// source has left.
var ErrStreamExhausted = errors.New("bit stream exhausted")

// Reader reads bits from a seekable source. Reader is not safe for
// concurrent use.
type Reader struct {
	name   string
	source io.ReadSeeker
	closer io.Closer

	buffered *bufio.Reader
	counter  *countingByteReader
	bits     *bitio.Reader

	// bitsRead is the number of bits handed to callers since the last
	// rewind. Together with counter.bytes it tells how many bits the
	// bit engine still holds in its one-byte cache.
	bitsRead uint64
}

// Open opens the file at path for bit-granular reading. The returned
// Reader owns the file; release it with [Reader.Close].
func Open(path string, bufferSize int) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader := NewReader(file, path, bufferSize)
	reader.closer = file
	return reader, nil
}

// NewReader returns a Reader over source. The name is reported by
// [Reader.SourceName]; it is not interpreted. The caller keeps
// ownership of source.
func NewReader(source io.ReadSeeker, name string, bufferSize int) *Reader {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	buffered := bufio.NewReaderSize(source, bufferSize)
	counter := &countingByteReader{reader: buffered}
	return &Reader{
		name:     name,
		source:   source,
		buffered: buffered,
		counter:  counter,
		bits:     bitio.NewReader(counter),
	}
}

// ReadBit reads the next bit.
func (r *Reader) ReadBit() (Bit, error) {
	value, err := r.bits.ReadBool()
	if err != nil {
		return Zero, r.wrapError(err)
	}
	r.bitsRead++
	if value {
		return One, nil
	}
	return Zero, nil
}

// ReadBits reads width bits and composes them into an unsigned
// integer, first bit most significant. Width must be at most 64.
func (r *Reader) ReadBits(width uint8) (uint64, error) {
	if width > wordBits {
		return 0, fmt.Errorf("read width %d exceeds 64 bits", width)
	}
	if width == 0 {
		return 0, nil
	}
	value, err := r.bits.ReadBits(width)
	if err != nil {
		return 0, r.wrapError(err)
	}
	r.bitsRead += uint64(width)
	return value, nil
}

// IsAtEnd reports whether every bit of the source has been read.
func (r *Reader) IsAtEnd() bool {
	if r.counter.bytes*8 > r.bitsRead {
		return false
	}
	_, err := r.buffered.Peek(1)
	return errors.Is(err, io.EOF)
}

// Reload rewinds to the first bit of the source, discarding anything
// buffered.
func (r *Reader) Reload() error {
	if _, err := r.source.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", r.name, err)
	}
	r.buffered.Reset(r.source)
	r.counter.bytes = 0
	r.bits = bitio.NewReader(r.counter)
	r.bitsRead = 0
	return nil
}

// SourceName returns the name the reader was opened with.
func (r *Reader) SourceName() string {
	return r.name
}

// BitsRead returns the number of bits read since the reader was
// created or last reloaded.
func (r *Reader) BitsRead() uint64 {
	return r.bitsRead
}

// Close releases the underlying file if the reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

func (r *Reader) wrapError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("reading %s: %w", r.name, ErrStreamExhausted)
	}
	return fmt.Errorf("reading %s: %w", r.name, err)
}

// countingByteReader counts the bytes the bit engine pulls from the
// buffer.
type countingByteReader struct {
	reader *bufio.Reader
	bytes  uint64
}

func (c *countingByteReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.bytes += uint64(n)
	return n, err
}

func (c *countingByteReader) ReadByte() (byte, error) {
	value, err := c.reader.ReadByte()
	if err == nil {
		c.bytes++
	}
	return value, err
}
