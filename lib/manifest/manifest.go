// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/huffarc/lib/codec"
)

// Record describes one archive entry.
type Record struct {
	Name   string `json:"name"`
	Size   uint64 `json:"size"`
	Digest Digest `json:"digest"`
}

// Manifest lists the entries of one archive in archive order.
type Manifest struct {
	// Archive is the path the manifest was taken from. It is
	// informational and ignored by [Compare].
	Archive string   `json:"archive"`
	Entries []Record `json:"entries"`
}

// TotalSize returns the sum of all entry sizes.
func (m *Manifest) TotalSize() uint64 {
	var total uint64
	for _, record := range m.Entries {
		total += record.Size
	}
	return total
}

// Write encodes m to w as one CBOR item.
func Write(w io.Writer, m *Manifest) error {
	if err := codec.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return nil
}

// Read decodes one CBOR manifest from r.
func Read(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := codec.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}

// ReadFile decodes the CBOR manifest stored at path.
func ReadFile(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Difference is one way two manifests disagree.
type Difference struct {
	// Index is the entry position in archive order.
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Problem string `json:"problem"`
}

func (d Difference) String() string {
	return fmt.Sprintf("entry %d (%s): %s", d.Index+1, d.Name, d.Problem)
}

// Compare checks got against want entry by entry and returns every
// difference. An empty result means both list the same names, sizes
// and digests in the same order.
func Compare(want, got *Manifest) []Difference {
	var differences []Difference
	for index := range max(len(want.Entries), len(got.Entries)) {
		switch {
		case index >= len(got.Entries):
			differences = append(differences, Difference{index, want.Entries[index].Name, "missing"})
		case index >= len(want.Entries):
			differences = append(differences, Difference{index, got.Entries[index].Name, "unexpected"})
		default:
			expected, actual := want.Entries[index], got.Entries[index]
			switch {
			case expected.Name != actual.Name:
				differences = append(differences, Difference{index, actual.Name,
					fmt.Sprintf("name differs, want %q", expected.Name)})
			case expected.Size != actual.Size:
				differences = append(differences, Difference{index, actual.Name,
					fmt.Sprintf("size %d, want %d", actual.Size, expected.Size)})
			case expected.Digest != actual.Digest:
				differences = append(differences, Difference{index, actual.Name, "content differs"})
			}
		}
	}
	return differences
}
