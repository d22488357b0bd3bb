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

package field

import "math/big"

// ValidateModulus returns ErrInvalidModulus unless m > 1.
func ValidateModulus(m *big.Int) error {
	if m == nil || m.Cmp(big.NewInt(1)) <= 0 {
		return ErrInvalidModulus
	}
	return nil
}

// Reduce returns a mod m in the canonical range [0, m) for any a,
// including negative values. m must be positive.
func Reduce(a, m *big.Int) *big.Int {
	r := new(big.Int).Rem(a, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}

// Add returns (a + b) mod m.
func Add(a, b, m *big.Int) *big.Int {
	sum := new(big.Int).Add(a, b)
	return Reduce(sum, m)
}

// Sub returns (a - b) mod m.
func Sub(a, b, m *big.Int) *big.Int {
	diff := new(big.Int).Sub(a, b)
	return Reduce(diff, m)
}

// Mul returns (a * b) mod m.
func Mul(a, b, m *big.Int) *big.Int {
	product := new(big.Int).Mul(a, b)
	return Reduce(product, m)
}

// InRange reports whether 0 <= a < m.
func InRange(a, m *big.Int) bool {
	return a != nil && a.Sign() >= 0 && a.Cmp(m) < 0
}
