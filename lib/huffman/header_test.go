// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
)

// headerBytes writes fields of the given width and returns the packed
// bytes.
func headerBytes(t *testing.T, width uint8, fields ...uint64) []byte {
	t.Helper()
	var output bytes.Buffer
	writer := bitstream.NewWriter(&output, "header", 0)
	for _, field := range fields {
		if err := writer.WriteBits(field, width); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return output.Bytes()
}

func TestHeaderRoundTrip(t *testing.T) {
	var frequencies Frequencies
	for symbol, count := range map[Symbol]uint64{'a': 40, 'b': 10, 'c': 7, 'd': 3, FilenameEnd: 1, OneMoreFile: 1, ArchiveEnd: 1} {
		frequencies[symbol] = count
	}
	code, err := Canonicalize(BuildTree(&frequencies))
	if err != nil {
		t.Fatal(err)
	}

	for _, width := range []uint8{9, 12, 64} {
		var output bytes.Buffer
		writer := bitstream.NewWriter(&output, "header", 0)
		if err := WriteHeader(writer, code, width); err != nil {
			t.Fatalf("width %d: WriteHeader: %v", width, err)
		}
		if err := writer.Close(); err != nil {
			t.Fatal(err)
		}

		reader := bitstream.NewReader(bytes.NewReader(output.Bytes()), "header", 0)
		rebuilt, err := ReadHeader(reader, width)
		if err != nil {
			t.Fatalf("width %d: ReadHeader: %v", width, err)
		}
		if !mapsEqual(codeStrings(rebuilt), codeStrings(code)) {
			t.Errorf("width %d: rebuilt %v, want %v", width, codeStrings(rebuilt), codeStrings(code))
		}
	}
}

func TestHeaderLayout(t *testing.T) {
	// Lengths a=1, b=2, FILENAME_END=3, ARCHIVE_END=3.
	code, err := CanonicalTrie([]CodeLength{
		{1, 'a'}, {2, 'b'}, {3, FilenameEnd}, {3, ArchiveEnd},
	})
	if err != nil {
		t.Fatal(err)
	}
	var output bytes.Buffer
	writer := bitstream.NewWriter(&output, "header", 0)
	if err := WriteHeader(writer, code, DefaultFieldWidth); err != nil {
		t.Fatal(err)
	}
	if writer.BitsWritten() != 9*(1+4+3) {
		t.Errorf("header is %d bits, want %d", writer.BitsWritten(), 9*(1+4+3))
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	want := headerBytes(t, 9, 4, 'a', 'b', 256, 258, 1, 1, 2)
	if !bytes.Equal(output.Bytes(), want) {
		t.Errorf("header = %x, want %x", output.Bytes(), want)
	}
}

func TestHeaderSingleSymbol(t *testing.T) {
	var frequencies Frequencies
	frequencies['x'] = 1000
	code, err := Canonicalize(BuildTree(&frequencies))
	if err != nil {
		t.Fatal(err)
	}

	var output bytes.Buffer
	writer := bitstream.NewWriter(&output, "header", 0)
	if err := WriteHeader(writer, code, DefaultFieldWidth); err != nil {
		t.Fatal(err)
	}
	// Count and symbol only: no length counts for a zero-length code.
	if writer.BitsWritten() != 18 {
		t.Errorf("header is %d bits, want 18", writer.BitsWritten())
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	if want := headerBytes(t, 9, 1, 'x'); !bytes.Equal(output.Bytes(), want) {
		t.Errorf("header = %x, want %x", output.Bytes(), want)
	}

	reader := bitstream.NewReader(bytes.NewReader(output.Bytes()), "header", 0)
	rebuilt, err := ReadHeader(reader, DefaultFieldWidth)
	if err != nil {
		t.Fatal(err)
	}
	terminals := rebuilt.Terminals()
	if len(terminals) != 1 || terminals[0].Value != 'x' || terminals[0].Path.Len() != 0 {
		t.Errorf("rebuilt terminals = %v, want one zero-length 'x'", terminals)
	}
}

func TestReadHeaderRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		fields []uint64
	}{
		{"zero symbols", []uint64{0}},
		{"too many symbols", []uint64{300}},
		{"symbol out of range", []uint64{2, 'a', 300}},
		{"duplicate symbol", []uint64{2, 'a', 'a', 2}},
		{"histogram overshoot", []uint64{2, 'a', 'b', 3}},
		{"over-subscribed lengths", []uint64{3, 'a', 'b', 'c', 2, 1}},
		{"lengths too long", []uint64{2, 'a', 'b', 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := headerBytes(t, 9, tt.fields...)
			reader := bitstream.NewReader(bytes.NewReader(data), "header", 0)
			_, err := ReadHeader(reader, 9)
			if !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("got %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func TestReadHeaderTruncated(t *testing.T) {
	data := headerBytes(t, 9, 3, 'a', 'b')
	reader := bitstream.NewReader(bytes.NewReader(data), "header", 0)
	if _, err := ReadHeader(reader, 9); !errors.Is(err, ErrStreamExhausted) {
		t.Errorf("got %v, want ErrStreamExhausted", err)
	}
}
