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

// Package shareset wraps shamir shares in self-describing envelopes that
// carry the parameters needed to recombine them, and encodes envelopes as
// JSON, YAML, or PEM.
package shareset

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shamir"
	"github.com/jeremyhahn/go-secretshare/pkg/validation"
)

// Envelope is one share plus the dealing parameters. Big integers are
// decimal strings.
type Envelope struct {
	// SetID identifies the dealing the share came from
	SetID string `json:"set_id" yaml:"set_id"`

	// Index is the share number (1 to Total)
	Index int `json:"index" yaml:"index"`

	// Threshold is the minimum number of shares required to reconstruct
	Threshold int `json:"threshold" yaml:"threshold"`

	// Total is the number of shares dealt
	Total int `json:"total" yaml:"total"`

	// Modulus is the field prime q
	Modulus string `json:"modulus" yaml:"modulus"`

	// Value is the share value f(Index) mod q
	Value string `json:"value" yaml:"value"`

	// Metadata contains optional information about the share
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// String never prints the share value.
func (e *Envelope) String() string {
	return fmt.Sprintf("Envelope{SetID: %s, Index: %d, Threshold: %d/%d}",
		e.SetID, e.Index, e.Threshold, e.Total)
}

// Validate checks the envelope parameters and parses its numbers.
func (e *Envelope) Validate() error {
	_, _, err := e.decode()
	return err
}

// decode returns the share and modulus the envelope carries.
func (e *Envelope) decode() (*shamir.Share, *big.Int, error) {
	if e == nil {
		return nil, nil, fmt.Errorf("%w: nil envelope", ErrInvalidEnvelope)
	}
	if _, err := uuid.Parse(e.SetID); err != nil {
		return nil, nil, fmt.Errorf("%w: set id %q: %v", ErrInvalidEnvelope, e.SetID, err)
	}
	if e.Threshold < 1 {
		return nil, nil, fmt.Errorf("%w: threshold %d (must be >= 1)", ErrInvalidEnvelope, e.Threshold)
	}
	if e.Total < e.Threshold {
		return nil, nil, fmt.Errorf("%w: total %d (must be >= threshold %d)", ErrInvalidEnvelope, e.Total, e.Threshold)
	}
	if e.Index < 1 || e.Index > e.Total {
		return nil, nil, fmt.Errorf("%w: index %d (must be in 1..%d)", ErrInvalidEnvelope, e.Index, e.Total)
	}

	if err := validation.ValidateMetadata(e.Metadata); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	modulus, ok := new(big.Int).SetString(e.Modulus, 10)
	if !ok || modulus.Cmp(big.NewInt(1)) <= 0 {
		return nil, nil, fmt.Errorf("%w: modulus %q", ErrInvalidEnvelope, e.Modulus)
	}
	value, ok := new(big.Int).SetString(e.Value, 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: value at index %d is not a decimal integer", ErrInvalidEnvelope, e.Index)
	}

	share := &shamir.Share{Value: value, Index: e.Index}
	if err := share.Validate(modulus); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	return share, modulus, nil
}
