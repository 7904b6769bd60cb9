// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/huffarc/cmd/huffarc/cli"
	"github.com/bureau-foundation/huffarc/lib/bitstream"
	"github.com/bureau-foundation/huffarc/lib/codec"
	"github.com/bureau-foundation/huffarc/lib/huffman"
	"github.com/bureau-foundation/huffarc/lib/manifest"
)

type listParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	CodecFlags
	Format string `json:"format" flag:"format,f" desc:"output format: text, json, cbor or diag" default:"text"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List archive entries with sizes and digests",
		Usage:   "huffarc list ARCHIVE [flags]",
		Description: `Decode ARCHIVE without writing anything and print each entry's
name, size and BLAKE3 content digest, in archive order.

Formats:
  text   aligned table (default)
  json   the manifest as indented JSON (same as --json)
  cbor   the manifest as deterministic CBOR, for "huffarc verify"
  diag   CBOR diagnostic notation of the manifest`,
		Examples: []cli.Example{
			{
				Description: "Show the entries",
				Command:     "huffarc list out.huff",
			},
			{
				Description: "Save a manifest for later verification",
				Command:     "huffarc list out.huff --format cbor > out.manifest",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: huffarc list ARCHIVE")
			}
			cfg, logger, err := params.Load()
			if err != nil {
				return err
			}
			options, err := params.options(cfg, logger)
			if err != nil {
				return err
			}
			format := params.Format
			if params.OutputJSON {
				format = "json"
			}
			if !validListFormat(format) {
				return fmt.Errorf("unknown format %q (want text, json, cbor or diag)", format)
			}

			logger = logger.With("command", "list", "archive", args[0])
			m, err := takeManifest(context.Background(), args[0], options)
			if err != nil {
				logger.Error("list failed", "category", huffman.Category(err))
				return err
			}
			logger.Debug("manifest taken", "entries", len(m.Entries), "bytes", m.TotalSize())
			return writeListing(os.Stdout, m, format)
		},
	}
}

func validListFormat(format string) bool {
	switch format {
	case "text", "json", "cbor", "diag":
		return true
	}
	return false
}

// takeManifest decodes archivePath into a manifest.
func takeManifest(ctx context.Context, archivePath string, options huffman.Options) (*manifest.Manifest, error) {
	sink := manifest.NewSink(archivePath)
	decoder, err := huffman.NewDecoder(sink, options)
	if err != nil {
		return nil, err
	}
	reader, err := bitstream.Open(archivePath, options.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	if _, err := decoder.Decode(ctx, reader); err != nil {
		return nil, err
	}
	return &sink.Manifest, nil
}

// writeListing renders m to w in format.
func writeListing(w io.Writer, m *manifest.Manifest, format string) error {
	switch format {
	case "json":
		return cli.WriteJSON(w, m)
	case "cbor":
		return manifest.Write(w, m)
	case "diag":
		data, err := codec.Marshal(m)
		if err != nil {
			return err
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, notation)
		return err
	case "text":
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		fmt.Fprintf(tw, "NAME\tSIZE\tDIGEST\n")
		for _, record := range m.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", record.Name, humanize.Bytes(record.Size), record.Digest.Short())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d entries, %s\n", len(m.Entries), humanize.Bytes(m.TotalSize()))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
