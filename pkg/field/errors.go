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

import "errors"

var (
	// ErrInvalidModulus indicates a nil modulus or a modulus <= 1
	ErrInvalidModulus = errors.New("field: modulus must be greater than 1")

	// ErrInvalidInverseInput indicates a or p is outside 0 < a < p
	ErrInvalidInverseInput = errors.New("field: inverse requires 0 < a < p")

	// ErrUnknownPrime indicates a named prime that is not registered
	ErrUnknownPrime = errors.New("field: unknown named prime")
)
