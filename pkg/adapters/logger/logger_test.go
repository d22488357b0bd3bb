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

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFieldHelpers(t *testing.T) {
	err := errors.New("boom")
	fields := []struct {
		field Field
		key   string
	}{
		{String("k", "v"), "k"},
		{Int("k", 1), "k"},
		{Int64("k", 1), "k"},
		{Float64("k", 1.5), "k"},
		{Bool("k", true), "k"},
		{Error(err), "error"},
		{Any("k", struct{}{}), "k"},
		{Ints("k", []int{1, 2}), "k"},
	}
	for _, f := range fields {
		if f.field.Key != f.key {
			t.Errorf("field key = %q, want %q", f.field.Key, f.key)
		}
	}
}

func TestSlogAdapter_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogAdapter(&SlogConfig{Level: LevelDebug, Output: &buf})

	log.Info("shares created", Int("threshold", 3), Int("total", 5))

	out := buf.String()
	for _, want := range []string{"shares created", "threshold=3", "total=5", "level=INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSlogAdapter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogAdapter(&SlogConfig{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	log.Warn("rejected", Error(errors.New("duplicate index")), Ints("indices", []int{2, 2}))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "rejected" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["error"] != "duplicate index" {
		t.Errorf("error = %v", record["error"])
	}
	if record["level"] != "WARN" {
		t.Errorf("level = %v", record["level"])
	}
}

func TestSlogAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogAdapter(&SlogConfig{Level: LevelWarn, Output: &buf})

	log.Debug("hidden")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	log.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected error output, got %q", buf.String())
	}
}

func TestSlogAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewSlogAdapter(&SlogConfig{Level: LevelDebug, Output: &buf})

	child := base.With(String("operation", "create")).WithError(errors.New("short read"))
	child.Debug("failed")

	out := buf.String()
	if !strings.Contains(out, "operation=create") {
		t.Errorf("child logger lost field: %q", out)
	}
	if !strings.Contains(out, "short read") {
		t.Errorf("child logger lost error: %q", out)
	}

	buf.Reset()
	base.Debug("plain")
	if strings.Contains(buf.String(), "operation=") {
		t.Errorf("parent logger picked up child fields: %q", buf.String())
	}
}

func TestNewSlogAdapter_NilConfig(t *testing.T) {
	if NewSlogAdapter(nil) == nil {
		t.Fatal("NewSlogAdapter(nil) returned nil")
	}
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	if log.With(String("k", "v")) == nil || log.WithError(errors.New("x")) == nil {
		t.Fatal("NoOpLogger children must not be nil")
	}
}
