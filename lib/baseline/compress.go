// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package baseline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies a baseline compressor.
type Algorithm uint8

const (
	// None stores data unchanged. Reported when a compressor cannot
	// shrink the input.
	None Algorithm = 0

	// LZ4 is LZ4 block compression.
	LZ4 Algorithm = 1

	// Zstd is zstd at the default level.
	Zstd Algorithm = 2
)

// Algorithms lists the compressors [Measure] runs, in report order.
var Algorithms = []Algorithm{LZ4, Zstd}

// String returns the name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", a)
	}
}

// ParseAlgorithm parses an algorithm name as returned by String.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// ErrIncompressible is returned by [Compress] when the output would
// not be smaller than the input.
var ErrIncompressible = errors.New("data is incompressible")

// Compress compresses data with algorithm. For None it returns data
// itself.
func Compress(data []byte, algorithm Algorithm) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case LZ4:
		return compressLZ4(data)
	case Zstd:
		return compressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
}

// Decompress reverses [Compress]. size must be the exact length of the
// original data.
func Decompress(compressed []byte, algorithm Algorithm, size int) ([]byte, error) {
	switch algorithm {
	case None:
		if len(compressed) != size {
			return nil, fmt.Errorf("stored data: size %d does not match expected %d", len(compressed), size)
		}
		return compressed, nil
	case LZ4:
		return decompressLZ4(compressed, size)
	case Zstd:
		return decompressZstd(compressed, size)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrIncompressible
	}
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock reports 0 for input it cannot compress.
	if written == 0 || written >= len(data) {
		return nil, ErrIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use through
// EncodeAll and DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("baseline: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("baseline: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, ErrIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, size int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
	}
	return result, nil
}

// Result is the outcome of one baseline compressor on one input.
type Result struct {
	// Algorithm is the compressor that was run.
	Algorithm Algorithm `json:"-"`

	// Name is Algorithm.String(), for serialized reports.
	Name string `json:"algorithm"`

	// Bytes is the compressed size. When the compressor could not
	// shrink the input it equals the input size and Stored is set.
	Bytes int `json:"bytes"`

	// Stored reports that the compressor could not shrink the input.
	Stored bool `json:"stored"`
}

// Measure runs every algorithm in [Algorithms] over data and verifies
// that each output decompresses back to data.
func Measure(data []byte) ([]Result, error) {
	results := make([]Result, 0, len(Algorithms))
	for _, algorithm := range Algorithms {
		result := Result{Algorithm: algorithm, Name: algorithm.String()}
		compressed, err := Compress(data, algorithm)
		switch {
		case errors.Is(err, ErrIncompressible):
			result.Bytes = len(data)
			result.Stored = true
		case err != nil:
			return nil, err
		default:
			restored, err := Decompress(compressed, algorithm, len(data))
			if err != nil {
				return nil, fmt.Errorf("verifying %s: %w", algorithm, err)
			}
			if !bytes.Equal(restored, data) {
				return nil, fmt.Errorf("verifying %s: output does not round-trip", algorithm)
			}
			result.Bytes = len(compressed)
		}
		results = append(results, result)
	}
	return results, nil
}
