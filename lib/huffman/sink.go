// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
)

// Sink receives the entries of an archive as they are decoded.
type Sink interface {
	// Create starts a new entry. The decoder writes the entry's
	// bytes to the returned EntryWriter and then calls exactly one of
	// Close (entry complete) or Discard (decode failed).
	Create(name string) (EntryWriter, error)
}

// EntryWriter receives the content of one entry.
type EntryWriter interface {
	// WriteBits appends the width low bits of value.
	WriteBits(value uint64, width uint8) error

	// Discard abandons the entry and releases its resources. Nothing
	// written so far may survive.
	Discard() error

	// Close completes the entry.
	Close() error
}

// DirSink writes entries as files below Root, creating intermediate
// directories. Entry names must be local paths (see
// [filepath.IsLocal]); anything else fails with [ErrUnsafeName].
type DirSink struct {
	Root       string
	BufferSize int
}

// CheckEntryName returns [ErrUnsafeName] unless name is a local path
// that extracts below the output directory. [Encoder.EncodeFiles] and
// [DirSink] both apply it.
func CheckEntryName(name string) error {
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%q: %w", name, ErrUnsafeName)
	}
	return nil
}

// Create opens Root/name for writing, truncating any existing file.
func (s *DirSink) Create(name string) (EntryWriter, error) {
	if err := CheckEntryName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", name, err)
	}
	writer, err := bitstream.Create(path, s.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &fileEntry{Writer: writer, path: path}, nil
}

type fileEntry struct {
	*bitstream.Writer
	path string
}

// Discard truncates the partial file, closes it and removes it.
func (f *fileEntry) Discard() error {
	clearErr := f.Clear()
	closeErr := f.Writer.Close()
	removeErr := os.Remove(f.path)
	return errors.Join(clearErr, closeErr, removeErr)
}
