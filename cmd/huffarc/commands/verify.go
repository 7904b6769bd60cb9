// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/huffarc/cmd/huffarc/cli"
	"github.com/bureau-foundation/huffarc/lib/huffman"
	"github.com/bureau-foundation/huffarc/lib/manifest"
)

type verifyParams struct {
	cli.ConfigFlags
	cli.JSONOutput
	CodecFlags
}

// verifyResult is the --json output of verify.
type verifyResult struct {
	Archive     string                `json:"archive"`
	Manifest    string                `json:"manifest"`
	Match       bool                  `json:"match"`
	Differences []manifest.Difference `json:"differences"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check an archive against a saved manifest",
		Usage:   "huffarc verify ARCHIVE MANIFEST [flags]",
		Description: `Decode ARCHIVE without writing anything and compare every entry's
name, size and digest with MANIFEST, a CBOR manifest written by
"huffarc list --format cbor".

Exits 0 when they match and 1 after printing the differences when they
do not. Archives that fail to decode are reported as errors.`,
		Examples: []cli.Example{
			{
				Description: "Verify a copied archive",
				Command:     "huffarc verify /mnt/backup/out.huff out.manifest",
			},
		},
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: huffarc verify ARCHIVE MANIFEST")
			}
			cfg, logger, err := params.Load()
			if err != nil {
				return err
			}
			options, err := params.options(cfg, logger)
			if err != nil {
				return err
			}

			logger = logger.With("command", "verify", "archive", args[0], "manifest", args[1])
			result, err := verifyArchive(context.Background(), args[0], args[1], options)
			if err != nil {
				logger.Error("verify failed", "category", huffman.Category(err))
				return err
			}
			logger.Info("verified", "match", result.Match, "differences", len(result.Differences))

			if done, err := params.EmitJSON(result); done {
				if err != nil {
					return err
				}
			} else if err := writeVerifyReport(os.Stdout, result); err != nil {
				return err
			}
			if !result.Match {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func verifyArchive(ctx context.Context, archivePath, manifestPath string, options huffman.Options) (*verifyResult, error) {
	want, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	got, err := takeManifest(ctx, archivePath, options)
	if err != nil {
		return nil, err
	}
	differences := manifest.Compare(want, got)
	if differences == nil {
		differences = []manifest.Difference{}
	}
	return &verifyResult{
		Archive:     archivePath,
		Manifest:    manifestPath,
		Match:       len(differences) == 0,
		Differences: differences,
	}, nil
}

func writeVerifyReport(w io.Writer, result *verifyResult) error {
	if result.Match {
		_, err := fmt.Fprintf(w, "%s matches %s\n", result.Archive, result.Manifest)
		return err
	}
	for _, difference := range result.Differences {
		if _, err := fmt.Fprintln(w, difference); err != nil {
			return err
		}
	}
	return nil
}
