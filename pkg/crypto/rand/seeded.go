// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-secretshare.
//
// go-secretshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rand

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

const seededReaderInfo = "go-secretshare seeded reader v1"

// SeededReader is a deterministic io.Reader producing a ChaCha20 keystream
// keyed by HKDF-SHA256 over a caller seed. The same seed always yields the
// same byte stream.
//
// It is meant for tests and reproducible fixtures. Shares dealt from a
// known seed provide no secrecy.
type SeededReader struct {
	cipher *chacha20.Cipher
	mu     sync.Mutex
}

var _ io.Reader = (*SeededReader)(nil)

// NewSeededReader derives a keystream from seed.
func NewSeededReader(seed []byte) (*SeededReader, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}

	kdf := hkdf.New(sha256.New, seed, nil, []byte(seededReaderInfo))
	material := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	defer clear(material)
	if _, err := io.ReadFull(kdf, material); err != nil {
		return nil, fmt.Errorf("failed to derive seeded reader key: %w", err)
	}

	c, err := chacha20.NewUnauthenticatedCipher(material[:chacha20.KeySize], material[chacha20.KeySize:])
	if err != nil {
		return nil, fmt.Errorf("failed to create seeded reader cipher: %w", err)
	}
	return &SeededReader{cipher: c}, nil
}

// Read fills p with the next len(p) keystream bytes. It never fails.
func (s *SeededReader) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(p)
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
