// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/huffman"
)

// Sink is a [huffman.Sink] that hashes entries instead of storing
// them. Completed entries are appended to Manifest.Entries; discarded
// entries leave no record.
type Sink struct {
	Manifest Manifest
}

// NewSink returns a Sink whose manifest is labelled with archive.
func NewSink(archive string) *Sink {
	return &Sink{Manifest: Manifest{Archive: archive, Entries: []Record{}}}
}

// Create starts hashing an entry.
func (s *Sink) Create(name string) (huffman.EntryWriter, error) {
	hasher := newHasher()
	return &entry{
		sink:   s,
		name:   name,
		hasher: hasher,
		Writer: bitstream.NewWriter(hasher, name, 0),
	}, nil
}

type entry struct {
	*bitstream.Writer
	sink   *Sink
	name   string
	hasher *blake3.Hasher
}

func (e *entry) Discard() error {
	return nil
}

func (e *entry) Close() error {
	size := e.BitsWritten() / 8
	if err := e.Writer.Close(); err != nil {
		return err
	}
	record := Record{Name: e.name, Size: size}
	copy(record.Digest[:], e.hasher.Sum(nil))
	e.sink.Manifest.Entries = append(e.sink.Manifest.Entries, record)
	return nil
}
