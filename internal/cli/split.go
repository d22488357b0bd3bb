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
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-secretshare/pkg/crypto/rand"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shamir"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shareset"
	"github.com/jeremyhahn/go-secretshare/pkg/validation"
)

func newSplitCmd(cfg *Config) *cobra.Command {
	var (
		secretArg string
		seedHex   string
		outDir    string
		formatArg string
		meta      map[string]string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into shares",
		Long: `Split an integer secret into n shares, any k of which reconstruct it.

The secret is a decimal integer, a 0x-prefixed hex integer, or "-" to read
it from stdin. Shares are written to stdout, or to one file per share with
--out-dir.`,
		Example: `  secretshare split --secret 12345678901234567890 -k 3 -n 6
  echo 42 | secretshare split --secret - --modulus ed25519 --format pem --out-dir ./shares`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateMetadata(meta); err != nil {
				return err
			}
			secret, err := readSecret(secretArg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			format, err := shareset.ParseFormat(formatArg)
			if err != nil {
				return err
			}

			modulus, err := cfg.Settings.Modulus()
			if err != nil {
				return err
			}

			random, closeRandom, err := cfg.random(seedHex)
			if err != nil {
				return err
			}
			defer closeRandom()

			scheme, err := shamir.NewScheme(&shamir.Config{
				Threshold: cfg.Settings.Scheme.Threshold,
				Total:     cfg.Settings.Scheme.Total,
				Modulus:   modulus,
				Random:    random,
				Logger:    cfg.Logger,
			})
			if err != nil {
				return err
			}
			shares, err := scheme.Split(secret)
			if err != nil {
				return err
			}

			set, err := shareset.New(scheme.Threshold(), scheme.Total(), modulus, shares)
			if err != nil {
				return err
			}
			for k, v := range meta {
				set.Metadata[k] = v
			}
			envelopes := set.Envelopes()

			if outDir == "" {
				data, err := shareset.MarshalAll(envelopes, format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			files, err := writeShareFiles(outDir, envelopes, format)
			if err != nil {
				return err
			}
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).
				PrintSplitSummary(set.ID.String(), set.Threshold, set.Total, files)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&secretArg, "secret", "s", "", "secret integer, or - to read from stdin")
	flags.IntP("threshold", "k", 0, "shares required to reconstruct (default from config)")
	flags.IntP("shares", "n", 0, "total shares to create (default from config)")
	flags.StringP("modulus", "m", "", "named prime or integer modulus (default from config)")
	flags.StringVarP(&formatArg, "format", "f", string(shareset.FormatJSON), "share encoding (json, yaml, pem)")
	flags.StringVar(&seedHex, "seed", "", "hex seed for a deterministic random stream (testing only)")
	flags.StringVar(&outDir, "out-dir", "", "write each share to its own file in this directory")
	flags.StringToStringVar(&meta, "meta", nil, "metadata key=value pairs stored in every share")
	_ = cmd.MarkFlagRequired("secret")

	_ = cfg.v.BindPFlag(keyThreshold, flags.Lookup("threshold"))
	_ = cfg.v.BindPFlag(keyTotal, flags.Lookup("shares"))
	_ = cfg.v.BindPFlag(keyModulus, flags.Lookup("modulus"))
	return cmd
}

// readSecret parses a decimal or 0x-prefixed secret, reading stdin for "-".
func readSecret(arg string, stdin io.Reader) (*big.Int, error) {
	if arg == "-" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		arg = line
	}
	arg = strings.TrimSpace(arg)
	secret, ok := new(big.Int).SetString(arg, 0)
	if !ok {
		return nil, fmt.Errorf("%w: not an integer", shamir.ErrInvalidSecret)
	}
	return secret, nil
}

// random returns the coefficient source and its cleanup function.
func (c *Config) random(seedHex string) (io.Reader, func(), error) {
	if seedHex != "" {
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --seed: %w", err)
		}
		c.Logger.Warn("using deterministic seeded random source")
		r, err := rand.NewSeededReader(seed)
		if err != nil {
			return nil, nil, err
		}
		return r, func() {}, nil
	}

	rc, err := c.Settings.RandConfig()
	if err != nil {
		return nil, nil, err
	}
	resolver, err := rand.NewResolver(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open random source: %w", err)
	}
	return resolver, func() { _ = resolver.Close() }, nil
}

func writeShareFiles(dir string, envelopes []*shareset.Envelope, format shareset.Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	files := make([]string, 0, len(envelopes))
	for _, env := range envelopes {
		data, err := shareset.Marshal(env, format)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fmt.Sprintf("share-%d.%s", env.Index, format))
		if err := os.WriteFile(path, data, 0600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
