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

//go:build tpm2

package rand

import (
	"fmt"
	"sync"

	"github.com/google/go-tpm/tpm2"
	"github.com/google/go-tpm/tpm2/transport"
	"github.com/google/go-tpm/tpm2/transport/tcp"
	"github.com/google/go-tpm/tpmutil"
)

const (
	defaultTPMDevice      = "/dev/tpm0"
	defaultTPMRequestSize = 32
	defaultSimulatorHost  = "localhost"
	defaultSimulatorPort  = 2321
)

// tpm2Resolver draws bytes from TPM2_GetRandom.
type tpm2Resolver struct {
	tpm     transport.TPMCloser
	maxSize int
	mu      sync.Mutex
}

var _ Resolver = (*tpm2Resolver)(nil)

func newTPM2Resolver(config *TPM2Config) (Resolver, error) {
	cfg := TPM2Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = defaultTPMRequestSize
	}

	var tpm transport.TPMCloser
	if cfg.UseSimulator {
		if cfg.SimulatorHost == "" {
			cfg.SimulatorHost = defaultSimulatorHost
		}
		if cfg.SimulatorPort <= 0 {
			cfg.SimulatorPort = defaultSimulatorPort
		}
		cmdAddr := fmt.Sprintf("%s:%d", cfg.SimulatorHost, cfg.SimulatorPort)
		platAddr := fmt.Sprintf("%s:%d", cfg.SimulatorHost, cfg.SimulatorPort+1)

		conn, err := tcp.Open(tcp.Config{
			CommandAddress:  cmdAddr,
			PlatformAddress: platAddr,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to TPM simulator at %s: %w", cmdAddr, err)
		}
		tpm = conn
	} else {
		if cfg.Device == "" {
			cfg.Device = defaultTPMDevice
		}
		dev, err := tpmutil.OpenTPM(cfg.Device)
		if err != nil {
			return nil, fmt.Errorf("failed to open TPM2 device %s: %w", cfg.Device, err)
		}
		tpm = transport.FromReadWriteCloser(dev)
	}

	return &tpm2Resolver{tpm: tpm, maxSize: cfg.MaxRequestSize}, nil
}

func tpm2Available() bool {
	return true
}

// Rand issues as many TPM2_GetRandom commands as needed; the TPM caps each
// response at its digest size.
func (t *tpm2Resolver) Rand(n int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tpm == nil {
		return nil, ErrClosed
	}

	result := make([]byte, 0, n)
	for len(result) < n {
		chunk := n - len(result)
		if chunk > t.maxSize {
			chunk = t.maxSize
		}
		rsp, err := tpm2.GetRandom{BytesRequested: uint16(chunk)}.Execute(t.tpm)
		if err != nil {
			clear(result)
			return nil, fmt.Errorf("TPM2_GetRandom failed: %w", err)
		}
		if len(rsp.RandomBytes.Buffer) == 0 {
			clear(result)
			return nil, fmt.Errorf("TPM2_GetRandom returned no bytes")
		}
		result = append(result, rsp.RandomBytes.Buffer...)
	}
	return result[:n], nil
}

func (t *tpm2Resolver) Read(p []byte) (int, error) {
	return readInto(t, p)
}

func (t *tpm2Resolver) Available() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tpm != nil
}

func (t *tpm2Resolver) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tpm == nil {
		return nil
	}
	err := t.tpm.Close()
	t.tpm = nil
	return err
}
