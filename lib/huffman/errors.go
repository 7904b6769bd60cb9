// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package huffman

import (
	"errors"

	"github.com/bureau-foundation/huffarc/lib/bitstream"
)

var (
	// ErrStreamExhausted means a read needed bits past the end of the
	// input: a truncated archive, or an input file that shrank between
	// passes.
	ErrStreamExhausted = bitstream.ErrStreamExhausted

	// ErrMalformedCode means the payload bits do not lead to a valid
	// symbol, or a control symbol appeared where it cannot.
	ErrMalformedCode = errors.New("malformed code")

	// ErrMalformedHeader means a block header describes no valid
	// canonical code.
	ErrMalformedHeader = errors.New("malformed block header")

	// ErrInputUnavailable means an input file could not be opened or
	// read while encoding.
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrUnsafeName means a decoded entry name is absolute or escapes
	// the output directory.
	ErrUnsafeName = errors.New("unsafe entry name")
)

// Category names the error kind of err for callers that report
// failures by category. It returns "unknown" for errors outside the
// codec's kinds and "" for nil.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInputUnavailable):
		return "input_unavailable"
	case errors.Is(err, ErrStreamExhausted):
		return "stream_exhausted"
	case errors.Is(err, ErrMalformedCode):
		return "malformed_code"
	case errors.Is(err, ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, ErrUnsafeName):
		return "unsafe_name"
	default:
		return "unknown"
	}
}
