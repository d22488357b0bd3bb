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

package shareset

import "errors"

var (
	// ErrInvalidEnvelope indicates a missing field or a malformed number
	ErrInvalidEnvelope = errors.New("shareset: invalid envelope")

	// ErrMismatchedSet indicates envelopes from different dealings
	ErrMismatchedSet = errors.New("shareset: envelopes belong to different share sets")

	// ErrUnknownFormat indicates an unsupported encoding
	ErrUnknownFormat = errors.New("shareset: unknown format")
)
