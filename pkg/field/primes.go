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

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

const (
	// PrimeMersenne127 is 2^127 - 1
	PrimeMersenne127 = "mersenne127"

	// PrimeEd25519 is the order of the ed25519 base point,
	// 2^252 + 27742317777372353535851937790883648493
	PrimeEd25519 = "ed25519"

	// PrimeSecp256k1 is the secp256k1 base field prime, 2^256 - 2^32 - 977
	PrimeSecp256k1 = "secp256k1"

	// PrimeMersenne521 is 2^521 - 1
	PrimeMersenne521 = "mersenne521"
)

var namedPrimes = map[string]*big.Int{
	PrimeMersenne127: mersenne(127),
	PrimeEd25519:     ed25519Order(),
	PrimeSecp256k1:   secp256k1Prime(),
	PrimeMersenne521: mersenne(521),
}

func mersenne(exp uint) *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), exp)
	return p.Sub(p, big.NewInt(1))
}

func ed25519Order() *big.Int {
	tail, _ := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	p := new(big.Int).Lsh(big.NewInt(1), 252)
	return p.Add(p, tail)
}

func secp256k1Prime() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 256)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), 32))
	return p.Sub(p, big.NewInt(977))
}

// Mersenne127 returns a copy of 2^127 - 1.
func Mersenne127() *big.Int {
	return new(big.Int).Set(namedPrimes[PrimeMersenne127])
}

// Ed25519Order returns a copy of the ed25519 group order.
func Ed25519Order() *big.Int {
	return new(big.Int).Set(namedPrimes[PrimeEd25519])
}

// Secp256k1Prime returns a copy of the secp256k1 field prime.
func Secp256k1Prime() *big.Int {
	return new(big.Int).Set(namedPrimes[PrimeSecp256k1])
}

// Mersenne521 returns a copy of 2^521 - 1.
func Mersenne521() *big.Int {
	return new(big.Int).Set(namedPrimes[PrimeMersenne521])
}

// Prime returns a copy of the named prime. Names are case-insensitive.
func Prime(name string) (*big.Int, error) {
	p, ok := namedPrimes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrime, name)
	}
	return new(big.Int).Set(p), nil
}

// PrimeNames returns the registered prime names in sorted order.
func PrimeNames() []string {
	names := make([]string, 0, len(namedPrimes))
	for name := range namedPrimes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseModulus resolves a named prime or parses a base-10 integer
// (a 0x prefix selects base 16). The result is validated with
// ValidateModulus but not tested for primality.
func ParseModulus(s string) (*big.Int, error) {
	if p, err := Prime(s); err == nil {
		return p, nil
	}
	m, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return nil, fmt.Errorf("%w: %q is neither a named prime nor an integer", ErrInvalidModulus, s)
	}
	if err := ValidateModulus(m); err != nil {
		return nil, err
	}
	return m, nil
}
