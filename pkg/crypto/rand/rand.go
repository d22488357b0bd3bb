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

// Package rand provides the randomness sources a dealer draws polynomial
// coefficients from.
//
// Share generation never reaches for an ambient generator. Callers create a
// Resolver once and pass it (it is an io.Reader) into share generation:
//
//	rng, err := rand.NewResolver(rand.ModeAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rng.Close()
//
//	shares, err := shamir.Create(rng, 3, 5, field.Mersenne127(), secret)
//
// # Sources
//
//   - Auto: PKCS#11 > TPM2 > software, whichever is compiled in and answers
//   - Software: crypto/rand
//   - TPM2: TPM2_GetRandom (build tag "tpm2")
//   - PKCS11: C_GenerateRandom on an HSM session (build tag "pkcs11")
//
// Hardware sources are excluded from default builds. Requesting one that was
// not compiled returns ErrNotCompiled.
//
// # Reproducible Output
//
// NewSeededReader returns a deterministic ChaCha20 keystream derived from a
// seed. It exists for tests and reproducible fixtures; shares dealt from a
// known seed offer no secrecy.
//
// # Thread Safety
//
// Every Resolver and SeededReader serializes access to its internal state
// and can be shared across goroutines.
package rand

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Mode specifies which RNG source to use.
type Mode string

const (
	// ModeAuto selects the best available source: PKCS#11 > TPM2 > software
	ModeAuto Mode = "auto"

	// ModeSoftware uses crypto/rand
	ModeSoftware Mode = "software"

	// ModeTPM2 uses the Trusted Platform Module 2.0 RNG
	ModeTPM2 Mode = "tpm2"

	// ModePKCS11 uses a PKCS#11 hardware security module RNG
	ModePKCS11 Mode = "pkcs11"
)

// Modes returns every supported mode.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeSoftware, ModeTPM2, ModePKCS11}
}

// ParseMode converts a string to a Mode. An empty string yields ModeAuto.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
}

// Config contains RNG configuration.
type Config struct {
	// Mode is the primary source. Defaults to ModeAuto.
	Mode Mode

	// FallbackMode is used when a read from the primary source fails.
	// Empty means failures are returned to the caller.
	FallbackMode Mode

	// TPM2Config is used when the TPM2 source is selected. Nil uses defaults.
	TPM2Config *TPM2Config

	// PKCS11Config is required when the PKCS#11 source is selected.
	PKCS11Config *PKCS11Config
}

// TPM2Config contains configuration for the TPM2 RNG.
type TPM2Config struct {
	// Device path (default: "/dev/tpm0"). Ignored when UseSimulator is set.
	Device string

	// MaxRequestSize caps the bytes requested per TPM2_GetRandom call
	// (default: 32).
	MaxRequestSize int

	// UseSimulator connects to a TCP simulator instead of a device
	UseSimulator bool

	// SimulatorHost (default: "localhost")
	SimulatorHost string

	// SimulatorPort is the command port; the platform port is the next
	// one up (default: 2321)
	SimulatorPort int
}

// PKCS11Config contains configuration for the PKCS#11 RNG.
type PKCS11Config struct {
	// Module path to the PKCS#11 library (e.g., /usr/lib/softhsm/libsofthsm2.so)
	Module string

	// SlotID is the slot whose token generates the random bytes
	SlotID uint

	// PIN logs the session in when non-empty
	PIN string
}

// Resolver is a configured randomness source. It implements io.Reader so it
// can be handed to share generation or any crypto/rand consumer.
type Resolver interface {
	io.Reader

	// Rand returns n random bytes.
	Rand(n int) ([]byte, error)

	// Available reports whether the source is ready to produce bytes.
	Available() bool

	// Close releases the underlying device or session.
	Close() error
}

// NewResolver creates a Resolver from a Mode, a *Config, or nil (auto).
func NewResolver(config interface{}) (Resolver, error) {
	cfg := normalizeConfig(config)
	return newResolver(cfg)
}

func normalizeConfig(config interface{}) *Config {
	switch v := config.(type) {
	case Mode:
		return &Config{Mode: v}
	case *Config:
		if v == nil {
			return &Config{Mode: ModeAuto}
		}
		if v.Mode == "" {
			v.Mode = ModeAuto
		}
		return v
	default:
		return &Config{Mode: ModeAuto}
	}
}

func newResolver(cfg *Config) (Resolver, error) {
	var (
		primary Resolver
		err     error
	)
	switch cfg.Mode {
	case ModeAuto:
		primary = newAutoResolver(cfg)
	case ModeSoftware:
		primary = &SoftwareResolver{}
	case ModeTPM2:
		primary, err = newTPM2Resolver(cfg.TPM2Config)
	case ModePKCS11:
		primary, err = newPKCS11Resolver(cfg.PKCS11Config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, cfg.Mode)
	}
	if err != nil {
		if cfg.FallbackMode == "" {
			return nil, err
		}
		return newResolver(&Config{Mode: cfg.FallbackMode})
	}
	if cfg.FallbackMode == "" || cfg.FallbackMode == cfg.Mode {
		return primary, nil
	}
	fallback, err := newResolver(&Config{Mode: cfg.FallbackMode})
	if err != nil {
		_ = primary.Close()
		return nil, fmt.Errorf("failed to create fallback resolver: %w", err)
	}
	return &fallbackResolver{primary: primary, fallback: fallback}, nil
}

// SoftwareResolver reads from crypto/rand.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *SoftwareResolver) Read(p []byte) (int, error) {
	return rand.Read(p)
}

func (s *SoftwareResolver) Available() bool {
	return true
}

func (s *SoftwareResolver) Close() error {
	return nil
}

// readInto adapts a Rand implementation to io.Reader semantics.
func readInto(r Resolver, p []byte) (int, error) {
	data, err := r.Rand(len(p))
	if err != nil {
		return 0, err
	}
	n := copy(p, data)
	clear(data)
	return n, nil
}
