// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/huffarc/cmd/huffarc/cli"
	"github.com/bureau-foundation/huffarc/lib/huffman"
	"github.com/bureau-foundation/huffarc/lib/manifest"
	"github.com/bureau-foundation/huffarc/lib/testutil"
)

// sourceTree writes files into a fresh directory and makes it the
// working directory, so relative inputs become entry names.
func sourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	source := t.TempDir()
	testutil.WriteFiles(t, source, files)
	t.Chdir(source)
	return source
}

func TestCompressDecompress(t *testing.T) {
	files := map[string]string{
		"a.txt":         "aaab",
		"empty":         "",
		"docs/notes.md": strings.Repeat("the quick brown fox\n", 200),
		"random.bin":    string(testutil.RandomBytes(7, 4096)),
	}
	sourceTree(t, files)
	names := []string{"a.txt", "empty", "docs/notes.md", "random.bin"}

	archivePath := filepath.Join(t.TempDir(), "out.huff")
	result, err := compressArchive(context.Background(), archivePath, names, huffman.Options{})
	if err != nil {
		t.Fatalf("compressArchive: %v", err)
	}
	if len(result.Blocks) != len(names) {
		t.Fatalf("blocks = %d, want %d", len(result.Blocks), len(names))
	}
	var inputBytes uint64
	for _, content := range files {
		inputBytes += uint64(len(content))
	}
	if result.InputBytes != inputBytes {
		t.Errorf("InputBytes = %d, want %d", result.InputBytes, inputBytes)
	}
	info, err := os.Stat(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	if uint64(info.Size()) != result.ArchiveBytes {
		t.Errorf("archive is %d bytes, result says %d", info.Size(), result.ArchiveBytes)
	}

	output := filepath.Join(t.TempDir(), "nested", "restore")
	entries, err := decompressArchive(context.Background(), archivePath, output, huffman.Options{})
	if err != nil {
		t.Fatalf("decompressArchive: %v", err)
	}
	for index, name := range names {
		if entries[index].Name != name || entries[index].Size != uint64(len(files[name])) {
			t.Errorf("entry %d = %+v, want %s with %d bytes", index, entries[index], name, len(files[name]))
		}
	}
	tree := testutil.ReadTree(t, output)
	if len(tree) != len(files) {
		t.Errorf("restored %d files, want %d", len(tree), len(files))
	}
	for name, content := range files {
		if tree[name] != content {
			t.Errorf("%s restored with %d bytes, want %d", name, len(tree[name]), len(content))
		}
	}
}

func TestCompressFailureLeavesNoArchive(t *testing.T) {
	sourceTree(t, map[string]string{"present.txt": "hello"})
	archiveDir := t.TempDir()
	archivePath := filepath.Join(archiveDir, "out.huff")

	_, err := compressArchive(context.Background(), archivePath, []string{"present.txt", "absent.txt"}, huffman.Options{})
	if !errors.Is(err, huffman.ErrInputUnavailable) {
		t.Fatalf("error = %v, want ErrInputUnavailable", err)
	}
	leftovers, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Errorf("archive directory holds %d entries after failure, want 0", len(leftovers))
	}
}

func TestCompressFailureKeepsExistingArchive(t *testing.T) {
	sourceTree(t, map[string]string{"present.txt": "hello"})
	archivePath := filepath.Join(t.TempDir(), "out.huff")
	if err := os.WriteFile(archivePath, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := compressArchive(context.Background(), archivePath, []string{"absent.txt"}, huffman.Options{}); err == nil {
		t.Fatal("compressArchive succeeded with a missing input")
	}
	data, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous" {
		t.Errorf("existing archive overwritten: %q", data)
	}
}

func TestCompressRejectsNonLocalInputs(t *testing.T) {
	source := sourceTree(t, map[string]string{"a.txt": "aaab"})
	absolute := filepath.Join(source, "a.txt")

	for _, inputs := range [][]string{{absolute}, {"a.txt", "../a.txt"}} {
		archiveDir := t.TempDir()
		archivePath := filepath.Join(archiveDir, "out.huff")
		_, err := compressArchive(context.Background(), archivePath, inputs, huffman.Options{})
		if !errors.Is(err, huffman.ErrUnsafeName) {
			t.Errorf("compressArchive(%q) error = %v, want ErrUnsafeName", inputs, err)
		}
		leftovers, err := os.ReadDir(archiveDir)
		if err != nil {
			t.Fatal(err)
		}
		if len(leftovers) != 0 {
			t.Errorf("compressArchive(%q) left %d files behind", inputs, len(leftovers))
		}
	}

	// The same file named relatively round-trips through decompress.
	archivePath := filepath.Join(t.TempDir(), "out.huff")
	if _, err := compressArchive(context.Background(), archivePath, []string{"a.txt"}, huffman.Options{}); err != nil {
		t.Fatalf("compressArchive: %v", err)
	}
	output := t.TempDir()
	if _, err := decompressArchive(context.Background(), archivePath, output, huffman.Options{}); err != nil {
		t.Fatalf("decompressArchive: %v", err)
	}
	if tree := testutil.ReadTree(t, output); tree["a.txt"] != "aaab" {
		t.Errorf("restored tree = %q", tree)
	}
}

func TestDecompressMissingArchive(t *testing.T) {
	_, err := decompressArchive(context.Background(), filepath.Join(t.TempDir(), "nope.huff"), t.TempDir(), huffman.Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

// writeArchive compresses files into a temporary archive and returns
// its path.
func writeArchive(t *testing.T, files map[string]string, names []string) string {
	t.Helper()
	sourceTree(t, files)
	archivePath := filepath.Join(t.TempDir(), "out.huff")
	if _, err := compressArchive(context.Background(), archivePath, names, huffman.Options{}); err != nil {
		t.Fatalf("compressArchive: %v", err)
	}
	return archivePath
}

func TestTakeManifest(t *testing.T) {
	archivePath := writeArchive(t, map[string]string{"a": "alpha", "b": "bravo!"}, []string{"b", "a"})

	m, err := takeManifest(context.Background(), archivePath, huffman.Options{})
	if err != nil {
		t.Fatalf("takeManifest: %v", err)
	}
	if m.Archive != archivePath {
		t.Errorf("Archive = %q, want %q", m.Archive, archivePath)
	}
	want := []manifest.Record{
		{Name: "b", Size: 6, Digest: manifest.HashContent([]byte("bravo!"))},
		{Name: "a", Size: 5, Digest: manifest.HashContent([]byte("alpha"))},
	}
	if len(m.Entries) != len(want) {
		t.Fatalf("entries = %+v, want %+v", m.Entries, want)
	}
	for index := range want {
		if m.Entries[index] != want[index] {
			t.Errorf("entry %d = %+v, want %+v", index, m.Entries[index], want[index])
		}
	}
}

func TestWriteListing(t *testing.T) {
	m := &manifest.Manifest{
		Archive: "out.huff",
		Entries: []manifest.Record{
			{Name: "a.txt", Size: 4, Digest: manifest.HashContent([]byte("aaab"))},
			{Name: "b.txt", Size: 0, Digest: manifest.HashContent(nil)},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buffer bytes.Buffer
		if err := writeListing(&buffer, m, "text"); err != nil {
			t.Fatal(err)
		}
		output := buffer.String()
		for _, want := range []string{"NAME", "a.txt", "b.txt", m.Entries[0].Digest.Short(), "2 entries, 4 B"} {
			if !strings.Contains(output, want) {
				t.Errorf("text listing missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		var buffer bytes.Buffer
		if err := writeListing(&buffer, m, "json"); err != nil {
			t.Fatal(err)
		}
		var decoded manifest.Manifest
		if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
			t.Fatalf("listing is not JSON: %v\n%s", err, buffer.String())
		}
		if len(decoded.Entries) != 2 || decoded.Entries[0] != m.Entries[0] {
			t.Errorf("decoded %+v, want %+v", decoded.Entries, m.Entries)
		}
	})

	t.Run("cbor", func(t *testing.T) {
		var buffer bytes.Buffer
		if err := writeListing(&buffer, m, "cbor"); err != nil {
			t.Fatal(err)
		}
		decoded, err := manifest.Read(&buffer)
		if err != nil {
			t.Fatal(err)
		}
		if len(manifest.Compare(m, decoded)) != 0 {
			t.Errorf("CBOR listing does not match: %v", manifest.Compare(m, decoded))
		}
	})

	t.Run("diag", func(t *testing.T) {
		var buffer bytes.Buffer
		if err := writeListing(&buffer, m, "diag"); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buffer.String(), `"a.txt"`) {
			t.Errorf("diagnostic notation missing entry name:\n%s", buffer.String())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := writeListing(&bytes.Buffer{}, m, "yaml"); err == nil {
			t.Error("writeListing accepted an unknown format")
		}
	})
}

func TestVerifyArchive(t *testing.T) {
	files := map[string]string{"a": "alpha", "b": "bravo"}
	archivePath := writeArchive(t, files, []string{"a", "b"})

	m, err := takeManifest(context.Background(), archivePath, huffman.Options{})
	if err != nil {
		t.Fatal(err)
	}
	manifestPath := filepath.Join(t.TempDir(), "out.manifest")
	file, err := os.Create(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeListing(file, m, "cbor"); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	result, err := verifyArchive(context.Background(), archivePath, manifestPath, huffman.Options{})
	if err != nil {
		t.Fatalf("verifyArchive: %v", err)
	}
	if !result.Match || len(result.Differences) != 0 {
		t.Errorf("unchanged archive: match=%v differences=%v", result.Match, result.Differences)
	}

	// Same names and sizes, different content.
	if err := os.WriteFile("b", []byte("BRAVO"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := compressArchive(context.Background(), archivePath, []string{"a", "b"}, huffman.Options{}); err != nil {
		t.Fatal(err)
	}
	result, err = verifyArchive(context.Background(), archivePath, manifestPath, huffman.Options{})
	if err != nil {
		t.Fatalf("verifyArchive: %v", err)
	}
	if result.Match {
		t.Fatal("modified archive matched")
	}
	want := manifest.Difference{Index: 1, Name: "b", Problem: "content differs"}
	if len(result.Differences) != 1 || result.Differences[0] != want {
		t.Errorf("differences = %v, want [%v]", result.Differences, want)
	}

	var report bytes.Buffer
	if err := writeVerifyReport(&report, result); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(report.String(), "entry 2 (b): content differs") {
		t.Errorf("report = %q", report.String())
	}
}

func TestVerifyCommandExitCode(t *testing.T) {
	t.Setenv("HUFFARC_CONFIG", "")
	archivePath := writeArchive(t, map[string]string{"a": "alpha"}, []string{"a"})

	empty := &manifest.Manifest{Archive: archivePath, Entries: []manifest.Record{}}
	manifestPath := filepath.Join(t.TempDir(), "empty.manifest")
	var buffer bytes.Buffer
	if err := manifest.Write(&buffer, empty); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(manifestPath, buffer.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Root().Execute([]string{"verify", archivePath, manifestPath})
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("error = %v, want exit code 1", err)
	}
}

func TestStatFile(t *testing.T) {
	sourceTree(t, map[string]string{"text": strings.Repeat("abcabcabd", 500)})

	stat, err := statFile("text", huffman.Options{})
	if err != nil {
		t.Fatalf("statFile: %v", err)
	}
	if stat.InputBytes != 4500 {
		t.Errorf("InputBytes = %d, want 4500", stat.InputBytes)
	}
	// a b c d, the name's t e x, and the three control symbols.
	if stat.Symbols != 10 {
		t.Errorf("Symbols = %d, want 10", stat.Symbols)
	}
	if stat.BlockBytes == 0 || stat.BlockBytes >= stat.InputBytes {
		t.Errorf("BlockBytes = %d, want between 0 and %d", stat.BlockBytes, stat.InputBytes)
	}
	if len(stat.Baselines) != 2 {
		t.Fatalf("baselines = %+v, want lz4 and zstd", stat.Baselines)
	}

	// Block size matches what compress writes for the same single file.
	result, err := compressArchive(context.Background(), filepath.Join(t.TempDir(), "one.huff"), []string{"text"}, huffman.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.ArchiveBytes != stat.BlockBytes {
		t.Errorf("stat says %d bytes, compress wrote %d", stat.BlockBytes, result.ArchiveBytes)
	}

	var buffer bytes.Buffer
	if err := writeStats(&buffer, []fileStat{stat}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"FILE", "HUFFMAN", "LZ4", "ZSTD", "text"} {
		if !strings.Contains(buffer.String(), want) {
			t.Errorf("stat table missing %q:\n%s", want, buffer.String())
		}
	}
}

func TestStatFileMissing(t *testing.T) {
	_, err := statFile(filepath.Join(t.TempDir(), "absent"), huffman.Options{})
	if !errors.Is(err, huffman.ErrInputUnavailable) {
		t.Errorf("error = %v, want ErrInputUnavailable", err)
	}
}

func TestRootCommand(t *testing.T) {
	t.Setenv("HUFFARC_CONFIG", "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown command suggestion", []string{"compres"}, `did you mean "compress"`},
		{"compress needs inputs", []string{"compress", "out.huff"}, "usage: huffarc compress"},
		{"decompress needs archive", []string{"decompress"}, "usage: huffarc decompress"},
		{"bad field width", []string{"list", "--field-width", "8", "x.huff"}, "field width 8"},
		{"bad list format", []string{"list", "--format", "xml", "x.huff"}, `unknown format "xml"`},
		{"unknown flag suggestion", []string{"list", "--formt", "json", "x.huff"}, "did you mean --format"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			root := Root()
			root.Output = &bytes.Buffer{}
			err := root.Execute(test.args)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Execute(%q) error = %v, want containing %q", test.args, err, test.wantErr)
			}
		})
	}
}

func TestCodecFlagsOverrideConfig(t *testing.T) {
	t.Setenv("HUFFARC_CONFIG", "")
	var flags cli.ConfigFlags
	cfg, logger, err := flags.Load()
	if err != nil {
		t.Fatal(err)
	}

	options, err := (&CodecFlags{}).options(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if options.FieldWidth != huffman.DefaultFieldWidth {
		t.Errorf("default FieldWidth = %d, want %d", options.FieldWidth, huffman.DefaultFieldWidth)
	}

	options, err = (&CodecFlags{FieldWidth: 16}).options(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if options.FieldWidth != 16 {
		t.Errorf("FieldWidth = %d, want 16", options.FieldWidth)
	}

	if _, err := (&CodecFlags{FieldWidth: 65}).options(cfg, logger); err == nil {
		t.Error("field width 65 accepted")
	}
}
