// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is the 32-byte BLAKE3 keyed hash of an entry's content.
type Digest [32]byte

// entryDomainKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it invalidates every stored manifest.
var entryDomainKey = [32]byte{
	'h', 'u', 'f', 'f', 'a', 'r', 'c', '.', 'm', 'a', 'n', 'i', 'f', 'e', 's', 't',
	'.', 'e', 'n', 't', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(entryDomainKey[:])
	if err != nil {
		panic("manifest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// HashContent returns the entry digest of data.
func HashContent(data []byte) Digest {
	hasher := newHasher()
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the lowercase hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, for tables.
func (d Digest) Short() string {
	return d.String()[:12]
}

// MarshalText encodes the digest as hex for JSON output.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a hex digest.
func (d *Digest) UnmarshalText(text []byte) error {
	if len(text) != hex.EncodedLen(len(d)) {
		return fmt.Errorf("digest %q: want %d hex characters", text, hex.EncodedLen(len(d)))
	}
	if _, err := hex.Decode(d[:], text); err != nil {
		return fmt.Errorf("digest %q: %w", text, err)
	}
	return nil
}
