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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-secretshare/pkg/adapters/logger"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shamir"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shareset"
	"github.com/jeremyhahn/go-secretshare/pkg/validation"
)

func newCombineCmd(cfg *Config) *cobra.Command {
	var formatArg string

	cmd := &cobra.Command{
		Use:   "combine <file>...",
		Short: "Reconstruct a secret from share files",
		Long: `Reconstruct a secret from at least threshold shares of one share set.

Each file may hold one or more shares. The encoding is detected from the
file contents unless --format is given.`,
		Example: "  secretshare combine shares/share-1.pem shares/share-4.pem shares/share-6.pem",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var forced shareset.Format
			if formatArg != "" {
				f, err := shareset.ParseFormat(formatArg)
				if err != nil {
					return err
				}
				forced = f
			}

			var envelopes []*shareset.Envelope
			for _, path := range args {
				// #nosec G304 - share file paths are provided by the operator
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read share file: %w", err)
				}
				format := forced
				if format == "" {
					format = shareset.DetectFormat(data)
				}
				envs, err := shareset.UnmarshalAll(data, format)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				cfg.Logger.Debug("read share file",
					logger.String("path", validation.SanitizeForLog(path)),
					logger.String("format", string(format)),
					logger.Int("shares", len(envs)))
				envelopes = append(envelopes, envs...)
			}

			set, err := shareset.Collect(envelopes)
			if err != nil {
				return err
			}

			scheme, err := shamir.NewScheme(&shamir.Config{
				Threshold: set.Threshold,
				Total:     set.Total,
				Modulus:   set.Modulus,
				Logger:    cfg.Logger,
			})
			if err != nil {
				return err
			}
			secret, err := scheme.Combine(set.Shares)
			if err != nil {
				return err
			}

			_, indices := shamir.Unpack(set.Shares)
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).
				PrintSecret(secret, set.ID.String(), indices)
		},
	}

	cmd.Flags().StringVarP(&formatArg, "format", "f", "", "share encoding (json, yaml, pem); detected when empty")
	return cmd
}
