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

import "errors"

var (
	// ErrInvalidSecret indicates a nil secret or a secret outside [0, q)
	ErrInvalidSecret = errors.New("shamir: secret must satisfy 0 <= s < q")

	// ErrInvalidThreshold indicates a threshold below 1 or above the share count
	ErrInvalidThreshold = errors.New("shamir: threshold must satisfy 1 <= k <= n")

	// ErrInvalidShareCount indicates more shares than distinct non-zero field elements
	ErrInvalidShareCount = errors.New("shamir: share count must be less than the modulus")

	// ErrDuplicateShareIndex indicates two shares evaluated at the same field element
	ErrDuplicateShareIndex = errors.New("shamir: duplicate share index")

	// ErrInsufficientShares indicates an empty subset or fewer shares than the threshold
	ErrInsufficientShares = errors.New("shamir: insufficient shares")

	// ErrInvalidShare indicates a nil share, an index below 1, or a value outside [0, q)
	ErrInvalidShare = errors.New("shamir: invalid share")

	// ErrRandomSource indicates a missing random source or a failed read
	ErrRandomSource = errors.New("shamir: random source failure")

	// ErrInvalidConfig indicates a nil scheme configuration
	ErrInvalidConfig = errors.New("shamir: config cannot be nil")
)
