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
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-secretshare/pkg/field"
)

func newPrimesCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "primes",
		Short: "List the named primes accepted by --modulus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintPrimes(primeInfos())
		},
	}
}

// primeInfos lists the named primes in name order
func primeInfos() []PrimeInfo {
	names := field.PrimeNames()
	infos := make([]PrimeInfo, 0, len(names))
	for _, name := range names {
		q, err := field.Prime(name)
		if err != nil {
			continue
		}
		infos = append(infos, PrimeInfo{Name: name, Bits: q.BitLen(), Value: q})
	}
	return infos
}
