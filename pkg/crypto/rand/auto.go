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
	"sync"
)

// newAutoResolver probes the compiled-in hardware sources and settles on the
// first one that answers, falling back to crypto/rand.
func newAutoResolver(cfg *Config) Resolver {
	if pkcs11Available() && cfg.PKCS11Config != nil {
		if r, err := newPKCS11Resolver(cfg.PKCS11Config); err == nil {
			if r.Available() {
				return r
			}
			_ = r.Close()
		}
	}
	if tpm2Available() {
		if r, err := newTPM2Resolver(cfg.TPM2Config); err == nil {
			if r.Available() {
				return r
			}
			_ = r.Close()
		}
	}
	return &SoftwareResolver{}
}

// fallbackResolver retries failed reads on a secondary source.
type fallbackResolver struct {
	primary  Resolver
	fallback Resolver
	mu       sync.RWMutex
}

var _ Resolver = (*fallbackResolver)(nil)

func (f *fallbackResolver) Rand(n int) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.primary == nil {
		return nil, ErrClosed
	}
	result, err := f.primary.Rand(n)
	if err != nil && f.fallback != nil {
		result, err = f.fallback.Rand(n)
	}
	return result, err
}

func (f *fallbackResolver) Read(p []byte) (int, error) {
	return readInto(f, p)
}

func (f *fallbackResolver) Available() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.primary == nil {
		return false
	}
	return f.primary.Available() || (f.fallback != nil && f.fallback.Available())
}

func (f *fallbackResolver) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.primary != nil {
		_ = f.primary.Close()
		f.primary = nil
	}
	if f.fallback != nil {
		_ = f.fallback.Close()
		f.fallback = nil
	}
	return nil
}
