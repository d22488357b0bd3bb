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
	"io"
	"math/big"

	"github.com/jeremyhahn/go-secretshare/pkg/field"
)

// Create splits secret into total shares over GF(modulus), any threshold of
// which reconstruct it. Shares are returned in index order 1..total.
//
// Example:
//
//	q := field.Mersenne127()
//	shares, err := shamir.Create(rand.Reader, 3, 6, q, secret)
//	// any 3 of the 6 shares recover secret
func Create(random io.Reader, threshold, total int, modulus, secret *big.Int) ([]*Share, error) {
	if err := field.ValidateModulus(modulus); err != nil {
		return nil, err
	}
	if secret == nil || !field.InRange(secret, modulus) {
		return nil, ErrInvalidSecret
	}
	if threshold < 1 || threshold > total {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidThreshold, threshold, total)
	}
	if big.NewInt(int64(total)).Cmp(modulus) >= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidShareCount, total)
	}
	if random == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrRandomSource)
	}

	poly, err := newPolynomial(random, threshold, modulus, secret)
	if err != nil {
		return nil, err
	}
	defer poly.zeroize()

	values := make([]*big.Int, total)
	for i := 1; i <= total; i++ {
		values[i-1] = poly.evaluate(big.NewInt(int64(i)), modulus)
	}
	return Pack(values), nil
}

// Reconstruct recovers the secret by Lagrange interpolation at x = 0.
//
// Any subset of at least threshold genuine shares returns the secret. A
// smaller subset returns a field element unrelated to it.
func Reconstruct(modulus *big.Int, shares []*Share) (*big.Int, error) {
	if err := field.ValidateModulus(modulus); err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares", ErrInsufficientShares)
	}

	xs, err := abscissae(modulus, shares)
	if err != nil {
		return nil, err
	}

	secret := new(big.Int)
	for i, share := range shares {
		numerator := big.NewInt(1)
		denominator := big.NewInt(1)
		for j := range shares {
			if i == j {
				continue
			}
			numerator = field.Mul(numerator, xs[j], modulus)
			denominator = field.Mul(denominator, field.Sub(xs[j], xs[i], modulus), modulus)
		}

		inv, err := field.Inverse(denominator, modulus)
		if err != nil {
			return nil, fmt.Errorf("lagrange basis for index %d: %w", share.Index, err)
		}

		term := field.Mul(share.Value, numerator, modulus)
		term = field.Mul(term, inv, modulus)
		secret = field.Add(secret, term, modulus)
	}
	return secret, nil
}

// ReconstructThreshold is Reconstruct with a known threshold: subsets with
// fewer than threshold shares are rejected instead of interpolated.
func ReconstructThreshold(modulus *big.Int, threshold int, shares []*Share) (*big.Int, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidThreshold, threshold)
	}
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientShares, threshold, len(shares))
	}
	return Reconstruct(modulus, shares)
}

// abscissae validates shares and returns their indices as field elements.
// Indices that are equal or congruent mod q are rejected.
func abscissae(modulus *big.Int, shares []*Share) ([]*big.Int, error) {
	xs := make([]*big.Int, len(shares))
	seen := make(map[string]int, len(shares))
	for i, share := range shares {
		if err := share.Validate(modulus); err != nil {
			return nil, err
		}
		x := field.Reduce(big.NewInt(int64(share.Index)), modulus)
		key := x.String()
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %d and %d", ErrDuplicateShareIndex, prev, share.Index)
		}
		seen[key] = share.Index
		xs[i] = x
	}
	return xs, nil
}
