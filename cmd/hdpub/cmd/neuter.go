// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/erfan007p/dashcore-lib/crypto/ckd"
)

var neuterCmd = &cobra.Command{
	Use:   "neuter <extended private key>",
	Short: "Print the extended public key of an extended private key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ckd.GetSerializedError(args[0]); !errors.Is(err, ckd.ErrArgumentIsPrivateExtended) {
			if err == nil {
				return errors.New("argument is already an extended public key")
			}
			return err
		}
		k, err := loadKey(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), k.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(neuterCmd)
}
