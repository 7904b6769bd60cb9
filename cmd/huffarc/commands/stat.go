// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/huffarc/cmd/huffarc/cli"
	"github.com/bureau-foundation/huffarc/lib/baseline"
	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/huffman"
)

type statParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	CodecFlags
}

// fileStat compares the Huffman block size of one file with the
// general-purpose baselines.
type fileStat struct {
	Name       string            `json:"name"`
	InputBytes uint64            `json:"input_bytes"`
	Symbols    int               `json:"symbols"`
	HeaderBits uint64            `json:"header_bits"`
	BlockBytes uint64            `json:"block_bytes"`
	Baselines  []baseline.Result `json:"baselines"`
}

func statCommand() *cli.Command {
	var params statParams

	return &cli.Command{
		Name:    "stat",
		Summary: "Estimate compression without writing an archive",
		Usage:   "huffarc stat FILE... [flags]",
		Description: `Encode each FILE as a single-block archive in memory and report
the block size next to LZ4 and zstd on the same bytes. Nothing is
written to disk.

Block sizes include the header and the stored name, rounded up to a
whole byte. The baselines compress content only.`,
		Examples: []cli.Example{
			{
				Description: "Compare codecs on a log file",
				Command:     "huffarc stat /var/log/syslog",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: huffarc stat FILE...")
			}
			cfg, logger, err := params.Load()
			if err != nil {
				return err
			}
			options, err := params.options(cfg, logger)
			if err != nil {
				return err
			}

			stats := make([]fileStat, 0, len(args))
			for _, path := range args {
				stat, err := statFile(path, options)
				if err != nil {
					logger.Error("stat failed", "path", path, "category", huffman.Category(err))
					return err
				}
				stats = append(stats, stat)
			}

			if done, err := params.EmitJSON(stats); done {
				return err
			}
			return writeStats(os.Stdout, stats)
		},
	}
}

func statFile(path string, options huffman.Options) (fileStat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileStat{}, fmt.Errorf("%w: %w", huffman.ErrInputUnavailable, err)
	}

	encoder, err := huffman.NewEncoder(options)
	if err != nil {
		return fileStat{}, err
	}
	reader := bitstream.NewReader(bytes.NewReader(data), path, options.BufferSize)
	writer := bitstream.NewWriter(io.Discard, path, options.BufferSize)
	block, err := encoder.EncodeFile(reader, writer, true)
	if err != nil {
		return fileStat{}, err
	}
	if err := writer.Close(); err != nil {
		return fileStat{}, err
	}

	baselines, err := baseline.Measure(data)
	if err != nil {
		return fileStat{}, fmt.Errorf("measuring baselines for %s: %w", path, err)
	}
	return fileStat{
		Name:       path,
		InputBytes: block.InputBytes,
		Symbols:    block.Symbols,
		HeaderBits: block.HeaderBits,
		BlockBytes: (block.HeaderBits + block.PayloadBits + 7) / 8,
		Baselines:  baselines,
	}, nil
}

func writeStats(w io.Writer, stats []fileStat) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	header := []string{"FILE", "SIZE", "SYMBOLS", "HUFFMAN"}
	if len(stats) > 0 {
		for _, result := range stats[0].Baselines {
			header = append(header, strings.ToUpper(result.Name))
		}
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, stat := range stats {
		row := []string{
			stat.Name,
			humanize.Bytes(stat.InputBytes),
			fmt.Sprint(stat.Symbols),
			formatRatio(stat.BlockBytes, stat.InputBytes),
		}
		for _, result := range stat.Baselines {
			cell := formatRatio(uint64(result.Bytes), stat.InputBytes)
			if result.Stored {
				cell += " (stored)"
			}
			row = append(row, cell)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// formatRatio renders a compressed size with its ratio to the input.
func formatRatio(compressed, input uint64) string {
	if input == 0 {
		return humanize.Bytes(compressed)
	}
	return fmt.Sprintf("%s (%.1f%%)", humanize.Bytes(compressed), 100*float64(compressed)/float64(input))
}
