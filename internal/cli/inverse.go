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
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-secretshare/pkg/adapters/logger"
	"github.com/jeremyhahn/go-secretshare/pkg/field"
	"github.com/jeremyhahn/go-secretshare/pkg/metrics"
	"github.com/jeremyhahn/go-secretshare/pkg/threshold/shamir"
)

func newInverseCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inverse <a> <p>",
		Short: "Compute a^-1 mod p for prime p",
		Long: `Compute the multiplicative inverse of a modulo the prime p using
Fermat's little theorem (a^(p-2) mod p). p may be a named prime.`,
		Example: "  secretshare inverse 79 127\n  secretshare inverse 182687704666362864775460604089535377456991567872 ed25519",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := new(big.Int).SetString(args[0], 0)
			if !ok {
				return fmt.Errorf("%w: %q is not an integer", field.ErrInvalidInverseInput, args[0])
			}
			p, err := field.ParseModulus(args[1])
			if err != nil {
				return err
			}

			start := time.Now()
			inv, err := field.Inverse(a, p)
			status := metrics.StatusSuccess
			if err != nil {
				status = metrics.StatusError
				metrics.RecordError(metrics.OpInverse, shamir.ErrorType(err))
			}
			metrics.RecordOperation(metrics.OpInverse, status, time.Since(start).Seconds())
			if err != nil {
				return err
			}

			cfg.Logger.Debug("inverse computed", logger.Int("modulus_bits", p.BitLen()))
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintInverse(a, p, inv)
		},
	}
}
