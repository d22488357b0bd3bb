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

// Package validation checks operator-supplied strings that end up in share
// envelopes and log lines.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	maxMetadataKey   = 64
	maxMetadataValue = 256
	maxMetadataPairs = 32
	maxLogLength     = 1000
)

// ErrInvalidMetadata indicates a metadata key or value that cannot be
// carried in every envelope encoding
var ErrInvalidMetadata = errors.New("validation: invalid metadata")

// metadataKeyPattern matches keys that are also valid PEM header names
var metadataKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

// ValidateMetadataKey rejects empty, oversized, or non-token keys.
func ValidateMetadataKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidMetadata)
	}
	if len(key) > maxMetadataKey {
		return fmt.Errorf("%w: key too long (max %d characters)", ErrInvalidMetadata, maxMetadataKey)
	}
	if !metadataKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: key %q contains invalid characters (allowed: a-z, A-Z, 0-9, -, _, .)",
			ErrInvalidMetadata, SanitizeForLog(key))
	}
	return nil
}

// ValidateMetadataValue rejects oversized values and control characters,
// which would break a PEM header line.
func ValidateMetadataValue(value string) error {
	if len(value) > maxMetadataValue {
		return fmt.Errorf("%w: value too long (max %d characters)", ErrInvalidMetadata, maxMetadataValue)
	}
	for _, r := range value {
		if r < 32 || r == 127 {
			return fmt.Errorf("%w: value contains control characters", ErrInvalidMetadata)
		}
	}
	return nil
}

// ValidateMetadata checks every pair and the pair count.
func ValidateMetadata(metadata map[string]string) error {
	if len(metadata) > maxMetadataPairs {
		return fmt.Errorf("%w: too many entries (max %d)", ErrInvalidMetadata, maxMetadataPairs)
	}
	for k, v := range metadata {
		if err := ValidateMetadataKey(k); err != nil {
			return err
		}
		if err := ValidateMetadataValue(v); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

// SanitizeForLog sanitizes a string for safe logging (prevents log injection).
func SanitizeForLog(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)

	if len(s) > maxLogLength {
		s = s[:maxLogLength] + "...[truncated]"
	}
	return s
}
