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

package shareset

import (
	"fmt"
	"maps"
	"math/big"
	"sort"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-secretshare/pkg/field"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shamir"
)

// Set is a group of shares from one dealing.
type Set struct {
	ID        uuid.UUID
	Threshold int
	Total     int
	Modulus   *big.Int
	Shares    []*shamir.Share

	// Metadata is copied into every envelope
	Metadata map[string]string
}

// New stamps freshly dealt shares with a new set id.
func New(threshold, total int, modulus *big.Int, shares []*shamir.Share) (*Set, error) {
	if err := field.ValidateModulus(modulus); err != nil {
		return nil, err
	}
	if threshold < 1 || threshold > total {
		return nil, fmt.Errorf("%w: k=%d, n=%d", shamir.ErrInvalidThreshold, threshold, total)
	}
	if err := checkShares(modulus, total, shares); err != nil {
		return nil, err
	}
	return &Set{
		ID:        uuid.New(),
		Threshold: threshold,
		Total:     total,
		Modulus:   new(big.Int).Set(modulus),
		Shares:    shares,
		Metadata:  make(map[string]string),
	}, nil
}

// Envelopes returns one envelope per share, in share order.
func (s *Set) Envelopes() []*Envelope {
	modulus := s.Modulus.String()
	envelopes := make([]*Envelope, len(s.Shares))
	for i, share := range s.Shares {
		var metadata map[string]string
		if len(s.Metadata) > 0 {
			metadata = make(map[string]string, len(s.Metadata))
			for k, v := range s.Metadata {
				metadata[k] = v
			}
		}
		envelopes[i] = &Envelope{
			SetID:     s.ID.String(),
			Index:     share.Index,
			Threshold: s.Threshold,
			Total:     s.Total,
			Modulus:   modulus,
			Value:     share.Value.String(),
			Metadata:  metadata,
		}
	}
	return envelopes
}

// Collect rebuilds a Set from envelopes. Every envelope must carry the same
// set id, threshold, total, modulus and metadata. Shares are sorted by index.
func Collect(envelopes []*Envelope) (*Set, error) {
	if len(envelopes) == 0 {
		return nil, fmt.Errorf("%w: no envelopes", shamir.ErrInsufficientShares)
	}

	first := envelopes[0]
	if err := first.Validate(); err != nil {
		return nil, err
	}
	id := uuid.MustParse(first.SetID)

	set := &Set{
		ID:        id,
		Threshold: first.Threshold,
		Total:     first.Total,
		Shares:    make([]*shamir.Share, 0, len(envelopes)),
		Metadata:  make(map[string]string),
	}
	for k, v := range first.Metadata {
		set.Metadata[k] = v
	}

	for _, env := range envelopes {
		share, modulus, err := env.decode()
		if err != nil {
			return nil, err
		}
		switch {
		case uuid.MustParse(env.SetID) != id:
			return nil, fmt.Errorf("%w: set id %s != %s", ErrMismatchedSet, env.SetID, first.SetID)
		case env.Threshold != set.Threshold || env.Total != set.Total:
			return nil, fmt.Errorf("%w: index %d has parameters %d/%d, expected %d/%d",
				ErrMismatchedSet, env.Index, env.Threshold, env.Total, set.Threshold, set.Total)
		case set.Modulus != nil && modulus.Cmp(set.Modulus) != 0:
			return nil, fmt.Errorf("%w: index %d has a different modulus", ErrMismatchedSet, env.Index)
		case !maps.Equal(env.Metadata, set.Metadata):
			return nil, fmt.Errorf("%w: index %d has different metadata", ErrMismatchedSet, env.Index)
		}
		set.Modulus = modulus
		set.Shares = append(set.Shares, share)
	}

	sort.Slice(set.Shares, func(i, j int) bool {
		return set.Shares[i].Index < set.Shares[j].Index
	})
	if err := checkShares(set.Modulus, set.Total, set.Shares); err != nil {
		return nil, err
	}
	return set, nil
}

// Reconstruct recovers the secret, requiring at least Threshold shares.
func (s *Set) Reconstruct() (*big.Int, error) {
	return shamir.ReconstructThreshold(s.Modulus, s.Threshold, s.Shares)
}

func checkShares(modulus *big.Int, total int, shares []*shamir.Share) error {
	if len(shares) == 0 {
		return fmt.Errorf("%w: no shares", shamir.ErrInsufficientShares)
	}
	seen := make(map[int]struct{}, len(shares))
	for _, share := range shares {
		if err := share.Validate(modulus); err != nil {
			return err
		}
		if share.Index > total {
			return fmt.Errorf("%w: index %d exceeds total %d", shamir.ErrInvalidShare, share.Index, total)
		}
		if _, dup := seen[share.Index]; dup {
			return fmt.Errorf("%w: %d", shamir.ErrDuplicateShareIndex, share.Index)
		}
		seen[share.Index] = struct{}{}
	}
	return nil
}
