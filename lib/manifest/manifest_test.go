// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/huffman"
	"github.com/bureau-foundation/huffarc/lib/testutil"
)

type archiveEntry struct {
	name    string
	content []byte
}

// buildArchive encodes entries from memory, so names need not exist
// on disk.
func buildArchive(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()
	encoder, err := huffman.NewEncoder(huffman.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var output bytes.Buffer
	writer := bitstream.NewWriter(&output, "archive", 0)
	for index, entry := range entries {
		reader := bitstream.NewReader(bytes.NewReader(entry.content), entry.name, 0)
		if _, err := encoder.EncodeFile(reader, writer, index == len(entries)-1); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return output.Bytes()
}

func takeManifest(t *testing.T, archive []byte) (*Manifest, error) {
	t.Helper()
	sink := NewSink("archive.huff")
	decoder, err := huffman.NewDecoder(sink, huffman.Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = decoder.Decode(context.Background(), bitstream.NewReader(bytes.NewReader(archive), "archive.huff", 0))
	return &sink.Manifest, err
}

func TestSinkRecordsEntries(t *testing.T) {
	entries := []archiveEntry{
		{"a.txt", []byte("aaab")},
		{"b.txt", nil},
		{"/abs/path/allowed/here", testutil.RandomBytes(5, 3000)},
	}
	m, err := takeManifest(t, buildArchive(t, entries))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Archive != "archive.huff" {
		t.Errorf("Archive = %q", m.Archive)
	}
	if len(m.Entries) != len(entries) {
		t.Fatalf("got %d records, want %d", len(m.Entries), len(entries))
	}
	for index, entry := range entries {
		record := m.Entries[index]
		if record.Name != entry.name || record.Size != uint64(len(entry.content)) {
			t.Errorf("record %d = %s/%d, want %s/%d", index, record.Name, record.Size, entry.name, len(entry.content))
		}
		if record.Digest != HashContent(entry.content) {
			t.Errorf("record %d digest %s, want %s", index, record.Digest, HashContent(entry.content))
		}
	}
	if m.TotalSize() != 3004 {
		t.Errorf("TotalSize = %d, want 3004", m.TotalSize())
	}
}

func TestSinkDropsDiscardedEntry(t *testing.T) {
	archive := buildArchive(t, []archiveEntry{
		{"kept", []byte("complete")},
		{"cut", bytes.Repeat([]byte("c"), 2000)},
	})
	m, err := takeManifest(t, archive[:len(archive)-10])
	if !errors.Is(err, huffman.ErrStreamExhausted) {
		t.Fatalf("got %v, want ErrStreamExhausted", err)
	}
	if len(m.Entries) != 1 || m.Entries[0].Name != "kept" {
		t.Errorf("entries = %v, want only kept", m.Entries)
	}
}

func TestHashContentIsKeyed(t *testing.T) {
	empty := HashContent(nil)
	// Unkeyed BLAKE3 of the empty input.
	if empty.String() == "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262" {
		t.Error("digest matches the unkeyed hash")
	}
	if HashContent([]byte("a")) == HashContent([]byte("b")) {
		t.Error("different content, same digest")
	}
	if len(empty.Short()) != 12 || !strings.HasPrefix(empty.String(), empty.Short()) {
		t.Errorf("Short() = %q", empty.Short())
	}
}

func TestDigestText(t *testing.T) {
	digest := HashContent([]byte("text"))
	data, err := json.Marshal(Record{Name: "n", Size: 4, Digest: digest})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"digest":"`+digest.String()+`"`) {
		t.Errorf("JSON %s lacks hex digest", data)
	}
	var decoded Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Digest != digest {
		t.Error("digest changed through JSON")
	}

	var invalid Digest
	for _, text := range []string{"abc", strings.Repeat("zz", 32)} {
		if err := invalid.UnmarshalText([]byte(text)); err == nil {
			t.Errorf("UnmarshalText(%q) succeeded", text)
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	original := &Manifest{
		Archive: "x.huff",
		Entries: []Record{
			{Name: "one", Size: 1, Digest: HashContent([]byte("1"))},
			{Name: "two", Size: 2, Digest: HashContent([]byte("22"))},
		},
	}
	var first, second bytes.Buffer
	if err := Write(&first, original); err != nil {
		t.Fatal(err)
	}
	if err := Write(&second, original); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("manifest encoding is not deterministic")
	}

	path := filepath.Join(t.TempDir(), "x.manifest")
	if err := os.WriteFile(path, first.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	decoded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if decoded.Archive != original.Archive || len(Compare(original, decoded)) != 0 {
		t.Errorf("decoded %+v, want %+v", decoded, original)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing): %v", err)
	}
	if _, err := Read(strings.NewReader("not cbor")); err == nil {
		t.Error("Read accepted garbage")
	}
}

func TestCompare(t *testing.T) {
	record := func(name, content string) Record {
		return Record{Name: name, Size: uint64(len(content)), Digest: HashContent([]byte(content))}
	}
	want := &Manifest{Entries: []Record{record("a", "1"), record("b", "22"), record("c", "333")}}

	tests := []struct {
		name     string
		got      []Record
		problems []string
	}{
		{"identical", []Record{record("a", "1"), record("b", "22"), record("c", "333")}, nil},
		{"missing", []Record{record("a", "1"), record("b", "22")}, []string{"missing"}},
		{"unexpected", []Record{record("a", "1"), record("b", "22"), record("c", "333"), record("d", "")}, []string{"unexpected"}},
		{"renamed", []Record{record("a", "1"), record("B", "22"), record("c", "333")}, []string{`name differs, want "b"`}},
		{"resized", []Record{record("a", "1"), record("b", "222"), record("c", "333")}, []string{"size 3, want 2"}},
		{"changed", []Record{record("a", "1"), record("b", "XX"), record("c", "333")}, []string{"content differs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			differences := Compare(want, &Manifest{Archive: "ignored", Entries: tt.got})
			if len(differences) != len(tt.problems) {
				t.Fatalf("differences = %v, want %v", differences, tt.problems)
			}
			for index, difference := range differences {
				if difference.Problem != tt.problems[index] {
					t.Errorf("difference %d = %q, want %q", index, difference.Problem, tt.problems[index])
				}
			}
		})
	}
}
