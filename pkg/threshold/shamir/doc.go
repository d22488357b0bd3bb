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

// Package shamir implements Shamir's threshold secret sharing over a prime
// field GF(q) chosen by the caller.
//
// A dealer splits a secret integer s, 0 <= s < q, into n shares such that
// any k of them recover s and any k-1 of them reveal nothing about it.
// Shares are points (i, f(i)) on a random polynomial f of degree k-1 with
// f(0) = s, for i = 1..n.
//
// # Splitting
//
//	shares, err := shamir.Create(rand.Reader, 3, 5, field.Mersenne127(), secret)
//
// The random source is injected. Coefficients are drawn at
// max(1024, bitlen(q)+128) bits and reduced mod q so the bias from the
// reduction is negligible. The polynomial is zeroized before Create
// returns.
//
// # Reconstruction
//
//	secret, err := shamir.Reconstruct(field.Mersenne127(), shares[:3])
//
// Reconstruct evaluates the Lagrange interpolating polynomial at zero.
// Given fewer than k genuine shares it returns an unrelated field element
// rather than an error; ReconstructThreshold rejects short subsets when the
// threshold is known.
//
// # Modulus
//
// The modulus must be prime. Primality is not checked: a composite modulus
// produces wrong results or an inverse error, never a panic. Use the named
// primes in package field when in doubt.
//
// # Scheme
//
// Scheme binds a threshold, share count, modulus, random source, and logger
// once and records Prometheus metrics for every split and combine.
package shamir
