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

package logger

// NoOpLogger discards everything
type NoOpLogger struct{}

var _ Logger = NoOpLogger{}

// NewNoOpLogger returns a logger that discards all output
func NewNoOpLogger() Logger {
	return NoOpLogger{}
}

func (NoOpLogger) Debug(string, ...Field)   {}
func (NoOpLogger) Info(string, ...Field)    {}
func (NoOpLogger) Warn(string, ...Field)    {}
func (NoOpLogger) Error(string, ...Field)   {}
func (n NoOpLogger) With(...Field) Logger   { return n }
func (n NoOpLogger) WithError(error) Logger { return n }
