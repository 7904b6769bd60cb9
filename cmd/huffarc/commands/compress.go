// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/huffarc/cmd/huffarc/cli"
	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/huffman"
)

type compressParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	CodecFlags
}

// compressResult is the --json output of compress.
type compressResult struct {
	Archive      string               `json:"archive"`
	InputBytes   uint64               `json:"input_bytes"`
	ArchiveBytes uint64               `json:"archive_bytes"`
	Blocks       []huffman.BlockStats `json:"blocks"`
}

func compressCommand() *cli.Command {
	var params compressParams

	return &cli.Command{
		Name:    "compress",
		Summary: "Create an archive from files",
		Usage:   "huffarc compress ARCHIVE FILE... [flags]",
		Description: `Encode each FILE as one block of ARCHIVE, in the order given.

Each path is stored as the entry name exactly as typed and extracts
relative to the output directory. Paths must therefore be relative and
stay below the current directory: absolute paths and paths with ".."
components are refused before anything is written. The archive is written to a temporary file next
to ARCHIVE and renamed into place only after every file encoded; a
failure leaves any existing ARCHIVE untouched.`,
		Examples: []cli.Example{
			{
				Description: "Archive a file and a subdirectory entry",
				Command:     "huffarc compress out.huff a.txt docs/b.txt",
			},
			{
				Description: "Report per-block sizes as JSON",
				Command:     "huffarc compress out.huff *.log --json",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: huffarc compress ARCHIVE FILE...")
			}
			cfg, logger, err := params.Load()
			if err != nil {
				return err
			}
			options, err := params.options(cfg, logger)
			if err != nil {
				return err
			}

			archivePath, inputs := args[0], args[1:]
			logger = logger.With("command", "compress", "archive", archivePath)
			result, err := compressArchive(context.Background(), archivePath, inputs, options)
			if err != nil {
				logger.Error("compress failed", "category", huffman.Category(err))
				return err
			}
			logger.Info("archive written",
				"files", len(result.Blocks),
				"input_bytes", result.InputBytes,
				"archive_bytes", result.ArchiveBytes,
			)

			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Printf("%s: %d files, %s -> %s\n", archivePath, len(result.Blocks),
				humanize.Bytes(result.InputBytes), humanize.Bytes(result.ArchiveBytes))
			return nil
		},
	}
}

// compressArchive encodes inputs into archivePath atomically.
func compressArchive(ctx context.Context, archivePath string, inputs []string, options huffman.Options) (*compressResult, error) {
	encoder, err := huffman.NewEncoder(options)
	if err != nil {
		return nil, err
	}
	for _, input := range inputs {
		if err := huffman.CheckEntryName(input); err != nil {
			return nil, fmt.Errorf("input %w", err)
		}
	}

	temporary, err := os.CreateTemp(filepath.Dir(archivePath), ".huffarc-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temporary archive: %w", err)
	}
	temporaryPath := temporary.Name()

	success := false
	defer func() {
		if !success {
			temporary.Close()
			os.Remove(temporaryPath)
		}
	}()

	writer := bitstream.NewWriter(temporary, temporaryPath, options.BufferSize)
	blocks, err := encoder.EncodeFiles(ctx, inputs, writer)
	if err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	if err := temporary.Close(); err != nil {
		return nil, fmt.Errorf("closing temporary archive: %w", err)
	}
	if err := os.Rename(temporaryPath, archivePath); err != nil {
		return nil, fmt.Errorf("renaming archive to %s: %w", archivePath, err)
	}
	success = true

	result := &compressResult{Archive: archivePath, Blocks: blocks}
	var bits uint64
	for _, block := range blocks {
		result.InputBytes += block.InputBytes
		bits += block.HeaderBits + block.PayloadBits
	}
	result.ArchiveBytes = (bits + 7) / 8
	return result, nil
}
