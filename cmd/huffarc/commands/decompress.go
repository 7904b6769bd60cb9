// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/huffarc/cmd/huffarc/cli"
	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/huffman"
)

type decompressParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	CodecFlags
	OutputDir string `json:"output_dir" flag:"output-dir,o" desc:"directory to extract into (default from config, else .)"`
}

func decompressCommand() *cli.Command {
	var params decompressParams

	return &cli.Command{
		Name:    "decompress",
		Summary: "Extract every entry of an archive",
		Usage:   "huffarc decompress ARCHIVE [flags]",
		Description: `Decode ARCHIVE and write each entry below the output directory,
creating intermediate directories. Existing files with the same name
are overwritten.

Decoding stops at the first error. The entry being written when the
error occurred is removed; entries completed before it stay on disk.
Entry names that are absolute or contain ".." components are refused.`,
		Examples: []cli.Example{
			{
				Description: "Extract into the current directory",
				Command:     "huffarc decompress out.huff",
			},
			{
				Description: "Extract somewhere else",
				Command:     "huffarc decompress out.huff -o /tmp/restore",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: huffarc decompress ARCHIVE")
			}
			cfg, logger, err := params.Load()
			if err != nil {
				return err
			}
			options, err := params.options(cfg, logger)
			if err != nil {
				return err
			}
			outputDir := params.OutputDir
			if outputDir == "" {
				outputDir = cfg.Decompress.OutputDir
			}

			logger = logger.With("command", "decompress", "archive", args[0], "output_dir", outputDir)
			entries, err := decompressArchive(context.Background(), args[0], outputDir, options)
			if err != nil {
				logger.Error("decompress failed",
					"category", huffman.Category(err),
					"completed_entries", len(entries),
				)
				return err
			}

			var total uint64
			for _, entry := range entries {
				total += entry.Size
			}
			logger.Info("archive extracted", "entries", len(entries), "bytes", total)

			if done, err := params.EmitJSON(entries); done {
				return err
			}
			fmt.Printf("extracted %d entries (%s) into %s\n", len(entries), humanize.Bytes(total), outputDir)
			return nil
		},
	}
}

// decompressArchive extracts archivePath below outputDir. It returns
// the entries completed, also on failure.
func decompressArchive(ctx context.Context, archivePath, outputDir string, options huffman.Options) ([]huffman.Entry, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	decoder, err := huffman.NewDecoder(&huffman.DirSink{Root: outputDir, BufferSize: options.BufferSize}, options)
	if err != nil {
		return nil, err
	}

	reader, err := bitstream.Open(archivePath, options.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	return decoder.Decode(ctx, reader)
}
