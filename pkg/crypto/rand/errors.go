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

package rand

import "errors"

var (
	// ErrUnknownMode indicates an unsupported RNG mode
	ErrUnknownMode = errors.New("rand: unknown RNG mode")

	// ErrNotCompiled indicates the RNG source was excluded at build time
	ErrNotCompiled = errors.New("rand: RNG source not compiled")

	// ErrClosed indicates the resolver has been closed
	ErrClosed = errors.New("rand: resolver closed")

	// ErrEmptySeed indicates a seeded reader was created without a seed
	ErrEmptySeed = errors.New("rand: seed cannot be empty")
)
