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

// Package field implements arithmetic in the prime field GF(p) over
// arbitrary-precision integers.
//
// Every value handed back by this package is canonical: a fresh *big.Int in
// the range [0, m). Go's big.Int.Rem truncates toward zero and can return a
// negative remainder for a negative dividend, so Reduce corrects the
// remainder by adding the modulus. Add, Sub, and Mul combine their operands
// and reduce the result in one step, which keeps intermediate magnitudes
// bounded during polynomial evaluation and interpolation.
//
// # Modular Inverse
//
// Inverse computes a^(p-2) mod p, the multiplicative inverse given by
// Fermat's Little Theorem:
//
//	a^(p-1) = 1 (mod p)  =>  a * a^(p-2) = 1 (mod p)
//
// The exponentiation is binary square-and-multiply and costs O(log p)
// modular multiplications.
//
// # Preconditions
//
// Primality of the modulus is NOT verified. Checking it on every call is
// too expensive for 128-4096 bit fields, so it is a documented caller
// precondition. With a composite modulus Inverse still returns a value,
// but that value is not an inverse for inputs sharing a factor with the
// modulus. Use one of the named primes (see Prime) or a modulus whose
// primality has been established out of band.
//
// # Named Primes
//
//	mersenne127   2^127 - 1
//	ed25519       2^252 + 27742317777372353535851937790883648493
//	secp256k1     2^256 - 2^32 - 977
//	mersenne521   2^521 - 1
package field
