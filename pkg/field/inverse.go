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

var two = big.NewInt(2)

// Inverse returns b such that (a * b) mod p == 1, computed as
// a^(p-2) mod p.
//
// Returns ErrInvalidInverseInput unless 0 < a < p. The result is only a
// true inverse when p is prime; primality is not checked.
func Inverse(a, p *big.Int) (*big.Int, error) {
	if a == nil || p == nil || p.Sign() <= 0 || a.Sign() <= 0 || a.Cmp(p) >= 0 {
		return nil, ErrInvalidInverseInput
	}
	exp := new(big.Int).Sub(p, two)
	return new(big.Int).Exp(a, exp, p), nil
}
