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

// minCoefficientBits is the floor on the width of a raw random coefficient
const minCoefficientBits = 1024

// polynomial holds coefficients in [0, q), constant term first
type polynomial struct {
	coefficients []*big.Int
}

func coefficientBytes(q *big.Int) int {
	bits := q.BitLen() + 128
	if bits < minCoefficientBits {
		bits = minCoefficientBits
	}
	return (bits + 7) / 8
}

// newPolynomial builds a degree threshold-1 polynomial with f(0) = secret.
func newPolynomial(random io.Reader, threshold int, q, secret *big.Int) (*polynomial, error) {
	p := &polynomial{coefficients: make([]*big.Int, threshold)}
	p.coefficients[0] = new(big.Int).Set(secret)

	buf := make([]byte, coefficientBytes(q))
	defer clear(buf)

	for i := 1; i < threshold; i++ {
		if _, err := io.ReadFull(random, buf); err != nil {
			p.zeroize()
			return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
		}
		c := new(big.Int).SetBytes(buf)
		p.coefficients[i] = field.Reduce(c, q)
		zeroInt(c)
	}
	return p, nil
}

// evaluate returns f(x) mod q with every step reduced.
func (p *polynomial) evaluate(x, q *big.Int) *big.Int {
	sum := new(big.Int)
	power := big.NewInt(1)
	for _, c := range p.coefficients {
		term := field.Mul(c, power, q)
		sum = field.Add(sum, term, q)
		power = field.Mul(power, x, q)
		zeroInt(term)
	}
	return sum
}

// zeroize overwrites every coefficient in place.
func (p *polynomial) zeroize() {
	for _, c := range p.coefficients {
		zeroInt(c)
	}
	p.coefficients = nil
}

func zeroInt(v *big.Int) {
	if v == nil {
		return
	}
	words := v.Bits()
	for i := range words {
		words[i] = 0
	}
	v.SetInt64(0)
}
