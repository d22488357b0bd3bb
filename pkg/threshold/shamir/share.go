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

package shamir

import (
	"fmt"
	"math"
	"math/big"
)

// Share is a single point (Index, Value) on the dealer's polynomial.
type Share struct {
	// Value is f(Index) mod q
	Value *big.Int

	// Index is the evaluation point, 1 to n
	Index int
}

// String never prints the share value.
func (s *Share) String() string {
	if s == nil {
		return "Share{<nil>}"
	}
	return fmt.Sprintf("Share{Index: %d}", s.Index)
}

// Validate checks the share against modulus q.
func (s *Share) Validate(q *big.Int) error {
	if s == nil || s.Value == nil {
		return fmt.Errorf("%w: missing value", ErrInvalidShare)
	}
	if s.Index < 1 {
		return fmt.Errorf("%w: index %d (must be >= 1)", ErrInvalidShare, s.Index)
	}
	if s.Value.Sign() < 0 || s.Value.Cmp(q) >= 0 {
		return fmt.Errorf("%w: value at index %d is outside [0, q)", ErrInvalidShare, s.Index)
	}
	return nil
}

// Pack turns the i-th value into the share with index i+1. A nil value
// yields a share with a nil Value, which Validate and Reconstruct reject.
func Pack(values []*big.Int) []*Share {
	shares := make([]*Share, len(values))
	for i, v := range values {
		shares[i] = &Share{Value: copyInt(v), Index: i + 1}
	}
	return shares
}

// Unpack splits shares into parallel value and index slices. A nil share
// unpacks to a nil value at index 0.
func Unpack(shares []*Share) ([]*big.Int, []int) {
	values := make([]*big.Int, len(shares))
	indices := make([]int, len(shares))
	for i, s := range shares {
		if s == nil {
			continue
		}
		values[i] = copyInt(s.Value)
		indices[i] = s.Index
	}
	return values, indices
}

// Pairs returns each share as a (value, index) pair. A nil share becomes
// a pair of nils, which FromPairs rejects.
func Pairs(shares []*Share) [][2]*big.Int {
	pairs := make([][2]*big.Int, len(shares))
	for i, s := range shares {
		if s == nil {
			continue
		}
		pairs[i] = [2]*big.Int{copyInt(s.Value), big.NewInt(int64(s.Index))}
	}
	return pairs
}

// FromPairs is the inverse of Pairs. Every pair needs a non-nil value and
// an index in [1, math.MaxInt].
func FromPairs(pairs [][2]*big.Int) ([]*Share, error) {
	shares := make([]*Share, len(pairs))
	for i, p := range pairs {
		if p[0] == nil || p[1] == nil {
			return nil, fmt.Errorf("%w: pair %d has a nil element", ErrInvalidShare, i)
		}
		if !p[1].IsInt64() || p[1].Sign() < 1 || p[1].Int64() > math.MaxInt {
			return nil, fmt.Errorf("%w: pair %d index %s is outside [1, %d]",
				ErrInvalidShare, i, p[1], math.MaxInt)
		}
		shares[i] = &Share{Value: new(big.Int).Set(p[0]), Index: int(p[1].Int64())}
	}
	return shares, nil
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
