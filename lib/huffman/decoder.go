// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"context"
	"errors"
	"fmt"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/trie"
)

// Entry describes one decoded archive entry.
type Entry struct {
	Name string `json:"name"`
	Size uint64 `json:"size"`
}

// Decoder reads archives and hands their entries to a [Sink].
type Decoder struct {
	options Options
	sink    Sink
}

// NewDecoder returns a Decoder that delivers entries to sink.
func NewDecoder(sink Sink, options Options) (*Decoder, error) {
	if sink == nil {
		return nil, fmt.Errorf("decoder requires a sink")
	}
	resolved, err := options.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Decoder{options: resolved, sink: sink}, nil
}

// Decode reads blocks from reader until one ends with ARCHIVE_END. It
// returns the entries completed before any failure. On failure the
// entry being written is discarded and decoding stops; entries already
// completed are left in the sink. ctx is checked between blocks.
func (d *Decoder) Decode(ctx context.Context, reader *bitstream.Reader) ([]Entry, error) {
	var entries []Entry
	for {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		entry, more, err := d.decodeBlock(reader)
		if err != nil {
			return entries, fmt.Errorf("decoding %s block %d: %w", reader.SourceName(), len(entries)+1, err)
		}
		entries = append(entries, entry)
		d.options.Logger.Debug("decoded entry", "name", entry.Name, "size", entry.Size)
		if !more {
			return entries, nil
		}
	}
}

// decodeBlock decodes one block. more reports whether the block ended
// with ONE_MORE_FILE.
func (d *Decoder) decodeBlock(reader *bitstream.Reader) (entry Entry, more bool, err error) {
	code, err := ReadHeader(reader, d.options.FieldWidth)
	if err != nil {
		return entry, false, err
	}
	if err := requireControlSymbols(code); err != nil {
		return entry, false, err
	}

	entry.Name, err = decodeName(reader, code)
	if err != nil {
		return entry, false, err
	}

	output, err := d.sink.Create(entry.Name)
	if err != nil {
		return entry, false, err
	}

	for {
		symbol, err := nextSymbol(reader, code)
		if err != nil {
			return entry, false, abandon(output, entry.Name, err)
		}
		switch {
		case symbol.IsLiteral():
			if err := output.WriteBits(uint64(symbol), LiteralWidth); err != nil {
				return entry, false, abandon(output, entry.Name, err)
			}
			entry.Size++
		case symbol == FilenameEnd:
			return entry, false, abandon(output, entry.Name,
				fmt.Errorf("%s inside payload: %w", symbol, ErrMalformedCode))
		default:
			if err := output.Close(); err != nil {
				return entry, false, fmt.Errorf("closing %s: %w", entry.Name, err)
			}
			return entry, symbol == OneMoreFile, nil
		}
	}
}

// abandon discards a partially written entry and returns cause, joined
// with any error from the discard itself.
func abandon(output EntryWriter, name string, cause error) error {
	if err := output.Discard(); err != nil {
		return errors.Join(cause, fmt.Errorf("discarding %s: %w", name, err))
	}
	return cause
}

func decodeName(reader *bitstream.Reader, code *trie.Trie[Symbol]) (string, error) {
	var name []byte
	for {
		symbol, err := nextSymbol(reader, code)
		if err != nil {
			return "", fmt.Errorf("decoding entry name: %w", err)
		}
		if symbol == FilenameEnd {
			return string(name), nil
		}
		if !symbol.IsLiteral() {
			return "", fmt.Errorf("%s inside entry name: %w", symbol, ErrMalformedCode)
		}
		name = append(name, byte(symbol))
	}
}

func nextSymbol(reader *bitstream.Reader, code *trie.Trie[Symbol]) (Symbol, error) {
	symbol, err := code.TraverseOnce(reader.ReadBit)
	if errors.Is(err, trie.ErrNotFound) {
		return 0, ErrMalformedCode
	}
	return symbol, err
}

// requireControlSymbols checks that code can frame a block. Every
// encoder-built code has all three control symbols, so a code without
// them did not come from a valid header.
func requireControlSymbols(code *trie.Trie[Symbol]) error {
	var found [3]bool
	for _, terminal := range code.Terminals() {
		if !terminal.Value.IsLiteral() {
			found[terminal.Value-FilenameEnd] = true
		}
	}
	for offset, ok := range found {
		if !ok {
			return fmt.Errorf("code lacks %s: %w", FilenameEnd+Symbol(offset), ErrMalformedHeader)
		}
	}
	return nil
}
