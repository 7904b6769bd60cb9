// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
)

// Options configures an [Encoder] or [Decoder]. Zero values select the
// defaults. Encoder and decoder must agree on FieldWidth.
type Options struct {
	// FieldWidth is the width in bits of numeric header fields.
	// Default: [DefaultFieldWidth].
	FieldWidth uint8

	// BufferSize is the chunk size in bytes for file readers and
	// writers the codec opens itself. Default:
	// [bitstream.DefaultBufferSize].
	BufferSize int

	// Logger receives per-block debug events. Nil discards them.
	Logger *slog.Logger
}

func (o Options) withDefaults() (Options, error) {
	if o.FieldWidth == 0 {
		o.FieldWidth = DefaultFieldWidth
	}
	if o.FieldWidth < MinFieldWidth || o.FieldWidth > MaxFieldWidth {
		return o, fmt.Errorf("header field width %d outside [%d, %d]", o.FieldWidth, MinFieldWidth, MaxFieldWidth)
	}
	if o.BufferSize <= 0 {
		o.BufferSize = bitstream.DefaultBufferSize
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o, nil
}
