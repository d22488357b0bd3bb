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

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-secretshare/pkg/field"
	"github.com/jeremyhahn/go-secretshare/pkg/metrics"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shamir"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shareset"
	"github.com/jeremyhahn/go-secretshare/pkg/validation"
)

const testSecret = "12345678901234567890123456789012345678"

// run executes the command tree with args and returns stdout and stderr
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(metrics.Enable)

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSplitCombine_RoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml", "pem"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			out, _, err := run(t, "", "split", "--secret", testSecret,
				"-k", "3", "-n", "6", "--format", format, "--out-dir", dir, "--meta", "owner=ops")
			require.NoError(t, err)
			assert.Contains(t, out, "(3 of 6)")

			files := []string{
				filepath.Join(dir, "share-6."+format),
				filepath.Join(dir, "share-2."+format),
				filepath.Join(dir, "share-4."+format),
			}
			out, _, err = run(t, "", append([]string{"combine"}, files...)...)
			require.NoError(t, err)
			assert.Equal(t, testSecret+"\n", out)
		})
	}
}

func TestSplit_StdoutAndStdinSecret(t *testing.T) {
	out, _, err := run(t, "0x2a\n", "split", "--secret", "-", "-k", "2", "-n", "3", "-m", "ed25519")
	require.NoError(t, err)

	envelopes, err := shareset.UnmarshalAll([]byte(out), shareset.FormatJSON)
	require.NoError(t, err)
	require.Len(t, envelopes, 3)
	assert.Equal(t, field.Ed25519Order().String(), envelopes[0].Modulus)

	path := filepath.Join(t.TempDir(), "all.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0600))

	out, _, err = run(t, "", "-o", "json", "combine", path)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "42", result["secret"])
	assert.Equal(t, envelopes[0].SetID, result["set_id"])
}

func TestSplit_SeedIsDeterministic(t *testing.T) {
	args := []string{"split", "--secret", "99", "-k", "3", "-n", "4", "--seed", "00112233"}
	a, _, err := run(t, "", args...)
	require.NoError(t, err)
	b, _, err := run(t, "", args...)
	require.NoError(t, err)

	envA, err := shareset.UnmarshalAll([]byte(a), shareset.FormatJSON)
	require.NoError(t, err)
	envB, err := shareset.UnmarshalAll([]byte(b), shareset.FormatJSON)
	require.NoError(t, err)
	for i := range envA {
		assert.Equal(t, envA[i].Value, envB[i].Value)
	}
}

func TestSplit_Errors(t *testing.T) {
	q := field.Mersenne127().String()

	_, _, err := run(t, "", "split", "--secret", q)
	assert.ErrorIs(t, err, shamir.ErrInvalidSecret)

	_, _, err = run(t, "", "split", "--secret", "abc")
	assert.ErrorIs(t, err, shamir.ErrInvalidSecret)

	_, _, err = run(t, "", "split", "--secret", "1", "-k", "5", "-n", "3")
	assert.Error(t, err)

	_, _, err = run(t, "", "split", "--secret", "1", "--format", "xml")
	assert.ErrorIs(t, err, shareset.ErrUnknownFormat)

	_, _, err = run(t, "", "split", "--secret", "1", "--seed", "zz")
	assert.Error(t, err)

	_, _, err = run(t, "", "split", "--secret", "1", "--meta", "bad:key=v")
	assert.ErrorIs(t, err, validation.ErrInvalidMetadata)

	_, _, err = run(t, "", "split")
	assert.Error(t, err, "--secret is required")
}

func TestCombine_BelowThreshold(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "", "split", "--secret", "7", "-k", "3", "-n", "5", "--out-dir", dir)
	require.NoError(t, err)

	_, _, err = run(t, "", "combine", filepath.Join(dir, "share-1.json"), filepath.Join(dir, "share-2.json"))
	assert.ErrorIs(t, err, shamir.ErrInsufficientShares)
}

func TestCombine_DuplicateShare(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "", "split", "--secret", "7", "-k", "2", "-n", "3", "--out-dir", dir)
	require.NoError(t, err)

	share := filepath.Join(dir, "share-1.json")
	_, _, err = run(t, "", "combine", share, share)
	assert.ErrorIs(t, err, shamir.ErrDuplicateShareIndex)
}

func TestInverse(t *testing.T) {
	tests := []struct {
		a, p, want string
	}{
		{"79", "127", "82"},
		{"50", "127", "94"},
		{"182687704666362864775460604089535377456991567872", "ed25519",
			"7155219595916845557842258654134856828180378438239419449390401977965479867845"},
	}
	for _, tt := range tests {
		out, _, err := run(t, "", "inverse", tt.a, tt.p)
		require.NoError(t, err)
		assert.Equal(t, tt.want+"\n", out)
	}

	_, _, err := run(t, "", "inverse", "0", "127")
	assert.ErrorIs(t, err, field.ErrInvalidInverseInput)

	_, _, err = run(t, "", "inverse", "127", "127")
	assert.ErrorIs(t, err, field.ErrInvalidInverseInput)
}

func TestPrimes(t *testing.T) {
	out, _, err := run(t, "", "primes")
	require.NoError(t, err)
	for _, name := range field.PrimeNames() {
		assert.Contains(t, out, name)
	}

	out, _, err = run(t, "", "-o", "json", "primes")
	require.NoError(t, err)
	var result struct {
		Primes []struct {
			Name  string `json:"name"`
			Bits  int    `json:"bits"`
			Value string `json:"value"`
		} `json:"primes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Primes, len(field.PrimeNames()))
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "secretshare version dev")

	out, _, err = run(t, "", "version", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "dev"`)
}

func TestMetricsSnapshot(t *testing.T) {
	_, stderr, err := run(t, "", "--metrics", "inverse", "79", "127")
	require.NoError(t, err)
	assert.Contains(t, stderr, "secretshare_operations_total")
	assert.Contains(t, stderr, `operation="inverse"`)
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secretshare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheme:\n  modulus: \"127\"\n  threshold: 2\n  total: 3\n"), 0600))

	out, _, err := run(t, "", "--config", path, "split", "--secret", "100")
	require.NoError(t, err)
	envelopes, err := shareset.UnmarshalAll([]byte(out), shareset.FormatJSON)
	require.NoError(t, err)
	require.Len(t, envelopes, 3)
	assert.Equal(t, "127", envelopes[0].Modulus)
	assert.Equal(t, 2, envelopes[0].Threshold)

	out, _, err = run(t, "", "--config", path, "split", "--secret", "100", "-n", "5")
	require.NoError(t, err)
	envelopes, err = shareset.UnmarshalAll([]byte(out), shareset.FormatJSON)
	require.NoError(t, err)
	assert.Len(t, envelopes, 5, "flag overrides config file")
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, err := run(t, "", "-o", "table", "primes")
	assert.Error(t, err)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := run(t, "", "-v", "split", "--secret", testSecret, "-k", "2", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "secret split")
	assert.NotContains(t, stderr, testSecret)
}
