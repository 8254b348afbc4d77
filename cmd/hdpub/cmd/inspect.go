// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/erfan007p/dashcore-lib/crypto/ckd"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <extended key>",
	Short: "Decode an extended key and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := loadKey(args[0])
		if err != nil {
			return err
		}
		return printKey(cmd.OutOrStdout(), k)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printKey(w io.Writer, k *ckd.ExtendedPublicKey) error {
	o := k.ToObject()
	if jsonFlag {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	}
	network := o.Network
	if network == "" {
		network = fmt.Sprintf("unknown (0x%08x)", k.Version())
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.AppendBulk([][]string{
		{"network", network},
		{"mode", k.Mode().String()},
		{"depth", fmt.Sprint(o.Depth)},
		{"fingerprint", fmt.Sprintf("%08x", o.Fingerprint)},
		{"parent fingerprint", fmt.Sprintf("%08x", o.ParentFingerprint)},
		{"child index", fmt.Sprint(o.ChildIndex)},
	})
	if o.Hardened != nil {
		table.Append([]string{"hardened", fmt.Sprint(*o.Hardened)})
	}
	table.AppendBulk([][]string{
		{"chain code", o.ChainCode},
		{"public key", o.PublicKey},
		{"checksum", fmt.Sprintf("%08x", o.Checksum)},
		{"xpubkey", o.XPubKey},
	})
	table.Render()
	return nil
}
