// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the huffarc command tree.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/huffarc/cmd/huffarc/cli"
	"github.com/bureau-foundation/huffarc/lib/config"
	"github.com/bureau-foundation/huffarc/lib/huffman"
)

// Root builds and returns the complete huffarc command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "huffarc",
		Description: `huffarc: multi-file archiver using canonical Huffman codes.

Each file becomes one block with its own code, built from the file's
name and content. Archives are bit-packed and carry no magic number or
checksum; use "list --format cbor" and "verify" to record and check
content digests.`,
		Subcommands: []*cli.Command{
			compressCommand(),
			decompressCommand(),
			listCommand(),
			verifyCommand(),
			statCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Archive two files",
				Command:     "huffarc compress docs.huff README.md notes/todo.txt",
			},
			{
				Description: "Extract into a directory",
				Command:     "huffarc decompress docs.huff --output-dir restored",
			},
			{
				Description: "Record a manifest and check the archive against it later",
				Command:     "huffarc list docs.huff --format cbor > docs.manifest && huffarc verify docs.huff docs.manifest",
			},
		},
	}
}

// CodecFlags overrides the configured header field width. Encoder and
// decoder must use the same width.
type CodecFlags struct {
	FieldWidth int `json:"field_width" flag:"field-width,w" desc:"header field width in bits, 9-64 (default from config)"`
}

// options resolves codec options from the configuration and flags.
func (c *CodecFlags) options(cfg *config.Config, logger *slog.Logger) (huffman.Options, error) {
	width := cfg.Codec.FieldWidth
	if c.FieldWidth != 0 {
		width = c.FieldWidth
	}
	if width < int(huffman.MinFieldWidth) || width > int(huffman.MaxFieldWidth) {
		return huffman.Options{}, fmt.Errorf("field width %d outside [%d, %d]", width, huffman.MinFieldWidth, huffman.MaxFieldWidth)
	}
	return huffman.Options{
		FieldWidth: uint8(width),
		BufferSize: cfg.Codec.BufferSize,
		Logger:     logger,
	}, nil
}
