// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package cmd

import (
	"fmt"
	"os"

	"github.com/ipfs/go-log"
	"github.com/spf13/cobra"

	"github.com/erfan007p/dashcore-lib/common"
	"github.com/erfan007p/dashcore-lib/crypto/ckd"
	"github.com/erfan007p/dashcore-lib/networks"
)

var (
	networkFlag  string
	logLevelFlag string
	jsonFlag     bool
	regtestFlag  bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hdpub",
	Short: "Inspect and derive BIP32/DIP14 extended public keys",
	Long: `hdpub decodes extended public keys (xpub, tpub and their 256-bit
DIP14 counterparts), derives public children along non-hardened paths and
neuters extended private keys.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := log.SetLogLevel(common.LoggerName, logLevelFlag); err != nil {
			return err
		}
		if regtestFlag {
			networks.EnableRegtest()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&networkFlag, "network", "n", "", "expected network name or alias (livenet, testnet, ...)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "error", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print JSON instead of a table")
	rootCmd.PersistentFlags().BoolVar(&regtestFlag, "regtest", false, "use regtest parameters for testnet")
}

// loadKey decodes the argument, checking the --network flag when given.
func loadKey(arg string) (*ckd.ExtendedPublicKey, error) {
	if networkFlag == "" {
		return ckd.FromString(arg)
	}
	return ckd.FromString(arg, networkFlag)
}
