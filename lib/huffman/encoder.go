// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/trie"
)

// BlockStats describes one encoded block.
type BlockStats struct {
	// Name is the entry name stored in the block.
	Name string `json:"name"`

	// InputBytes is the size of the file content.
	InputBytes uint64 `json:"input_bytes"`

	// Symbols is the number of distinct symbols in the block's code,
	// control symbols included.
	Symbols int `json:"symbols"`

	// HeaderBits is the size of the block header.
	HeaderBits uint64 `json:"header_bits"`

	// PayloadBits is the size of the encoded name, content and
	// control symbols.
	PayloadBits uint64 `json:"payload_bits"`
}

// Encoder writes archives. An Encoder holds no per-archive state and
// may be reused.
type Encoder struct {
	options Options
}

// NewEncoder returns an Encoder configured by options.
func NewEncoder(options Options) (*Encoder, error) {
	resolved, err := options.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Encoder{options: resolved}, nil
}

// EncodeFiles appends one block per path to writer, in order, marking
// the last block with ARCHIVE_END. Each path is stored as the entry
// name exactly as given, so every path must pass [CheckEntryName];
// that is checked for all paths before anything is written. After
// that the first failure stops the run; blocks already written stay in
// writer. ctx is checked between files.
func (e *Encoder) EncodeFiles(ctx context.Context, paths []string, writer *bitstream.Writer) ([]BlockStats, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	for _, path := range paths {
		if err := CheckEntryName(path); err != nil {
			return nil, fmt.Errorf("input %w", err)
		}
	}
	stats := make([]BlockStats, 0, len(paths))
	for index, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		block, err := e.encodePath(path, writer, index == len(paths)-1)
		if err != nil {
			return stats, err
		}
		stats = append(stats, block)
	}
	return stats, nil
}

func (e *Encoder) encodePath(path string, writer *bitstream.Writer, last bool) (BlockStats, error) {
	reader, err := bitstream.Open(path, e.options.BufferSize)
	if err != nil {
		return BlockStats{}, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	defer reader.Close()
	return e.EncodeFile(reader, writer, last)
}

// EncodeFile appends the block for reader's source to writer. The
// source name becomes the entry name. last selects ARCHIVE_END over
// ONE_MORE_FILE as the terminator.
func (e *Encoder) EncodeFile(reader *bitstream.Reader, writer *bitstream.Writer, last bool) (BlockStats, error) {
	name := reader.SourceName()
	stats := BlockStats{Name: name}

	frequencies, inputBytes, err := CountOccurrences(reader)
	if err != nil {
		return stats, err
	}
	stats.InputBytes = inputBytes

	code, err := Canonicalize(BuildTree(&frequencies))
	if err != nil {
		return stats, fmt.Errorf("canonicalizing code for %s: %w", name, err)
	}
	stats.Symbols = code.TerminalCount()

	start := writer.BitsWritten()
	if err := WriteHeader(writer, code, e.options.FieldWidth); err != nil {
		return stats, err
	}
	stats.HeaderBits = writer.BitsWritten() - start

	start = writer.BitsWritten()
	if err := writePayload(reader, writer, code, last); err != nil {
		return stats, err
	}
	stats.PayloadBits = writer.BitsWritten() - start

	e.options.Logger.Debug("encoded block",
		"name", name,
		"input_bytes", stats.InputBytes,
		"symbols", stats.Symbols,
		"header_bits", stats.HeaderBits,
		"payload_bits", stats.PayloadBits,
	)
	return stats, nil
}

// CountOccurrences counts the bytes of reader's source name and
// content in one table, adds one occurrence of each control symbol,
// and rewinds reader. It also returns the content size in bytes.
func CountOccurrences(reader *bitstream.Reader) (Frequencies, uint64, error) {
	var frequencies Frequencies
	for _, value := range []byte(reader.SourceName()) {
		frequencies[value]++
	}

	var inputBytes uint64
	for !reader.IsAtEnd() {
		value, err := reader.ReadBits(LiteralWidth)
		if err != nil {
			return frequencies, inputBytes, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
		}
		frequencies[value]++
		inputBytes++
	}

	frequencies[FilenameEnd] = 1
	frequencies[OneMoreFile] = 1
	frequencies[ArchiveEnd] = 1

	if err := reader.Reload(); err != nil {
		return frequencies, inputBytes, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	return frequencies, inputBytes, nil
}

// codeTable maps each symbol to its code.
type codeTable struct {
	codes   [AlphabetSize]bitstream.Bits
	present [AlphabetSize]bool
}

func newCodeTable(code *trie.Trie[Symbol]) *codeTable {
	table := &codeTable{}
	for _, terminal := range code.Terminals() {
		table.codes[terminal.Value] = terminal.Path
		table.present[terminal.Value] = true
	}
	return table
}

func (c *codeTable) write(writer *bitstream.Writer, symbol Symbol) error {
	if !c.present[symbol] {
		return fmt.Errorf("symbol %s has no code", symbol)
	}
	return writer.WriteCode(c.codes[symbol])
}

func writePayload(reader *bitstream.Reader, writer *bitstream.Writer, code *trie.Trie[Symbol], last bool) error {
	table := newCodeTable(code)
	name := reader.SourceName()

	for _, value := range []byte(name) {
		if err := table.write(writer, Symbol(value)); err != nil {
			return fmt.Errorf("encoding name of %s: %w", name, err)
		}
	}
	if err := table.write(writer, FilenameEnd); err != nil {
		return err
	}

	for !reader.IsAtEnd() {
		value, err := reader.ReadBits(LiteralWidth)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInputUnavailable, err)
		}
		if err := table.write(writer, Symbol(value)); err != nil {
			// The byte was not seen in the counting pass.
			return fmt.Errorf("%w: %s changed while encoding: %w", ErrInputUnavailable, name, err)
		}
	}

	terminator := OneMoreFile
	if last {
		terminator = ArchiveEnd
	}
	return table.write(writer, terminator)
}
