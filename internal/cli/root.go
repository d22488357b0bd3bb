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
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-secretshare/pkg/metrics"
)

// NewRootCommand builds the secretshare command tree
func NewRootCommand() *cobra.Command {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:   "secretshare",
		Short: "Threshold secret sharing over prime fields",
		Long: `secretshare splits an integer secret into n shares over a prime field
so that any k of them reconstruct it and fewer reveal nothing.

Named primes:
  - mersenne127: 2^127 - 1
  - ed25519:     order of the ed25519 base point subgroup
  - secp256k1:   secp256k1 field prime
  - mersenne521: 2^521 - 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.load(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Settings.Metrics.Enabled {
				return nil
			}
			metrics.CollectOnce()
			return metrics.WriteText(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(keyConfigFile, "", "config file (YAML)")
	flags.StringP(keyOutputFormat, "o", defaultOutFormat, "output format (text, json)")
	flags.BoolP(keyVerbose, "v", false, "verbose output (debug logging)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.Bool("metrics", false, "write a Prometheus metrics snapshot to stderr")

	_ = cfg.v.BindPFlag(keyConfigFile, flags.Lookup(keyConfigFile))
	_ = cfg.v.BindPFlag(keyOutputFormat, flags.Lookup(keyOutputFormat))
	_ = cfg.v.BindPFlag(keyVerbose, flags.Lookup(keyVerbose))
	_ = cfg.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = cfg.v.BindPFlag(keyLogFormat, flags.Lookup("log-format"))
	_ = cfg.v.BindPFlag(keyMetrics, flags.Lookup("metrics"))

	rootCmd.AddCommand(newSplitCmd(cfg))
	rootCmd.AddCommand(newCombineCmd(cfg))
	rootCmd.AddCommand(newInverseCmd(cfg))
	rootCmd.AddCommand(newPrimesCmd(cfg))
	rootCmd.AddCommand(newVersionCmd(cfg))
	return rootCmd
}

// Execute runs the root command and prints any error in the selected
// output format
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		format, _ := cmd.PersistentFlags().GetString(keyOutputFormat)
		_ = NewPrinter(format, os.Stderr).PrintError(err)
		return err
	}
	return nil
}
