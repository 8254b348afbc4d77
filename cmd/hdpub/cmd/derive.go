// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package cmd

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/erfan007p/dashcore-lib/crypto"
	"github.com/erfan007p/dashcore-lib/crypto/ckd"
)

var (
	countFlag uint32
	startFlag uint32
)

var deriveCmd = &cobra.Command{
	Use:   "derive <extended key> [path]",
	Short: "Derive public children along a non-hardened path",
	Long: `Derive the key at path (default "m") and print it. With --count, print
the --count consecutive children of that key starting at --start instead.
Path elements are 32-bit integers or 0x-prefixed 256-bit hex indices.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := loadKey(args[0])
		if err != nil {
			return err
		}
		path := ckd.RootElementAlias[0]
		if len(args) > 1 {
			path = args[1]
		}
		base, err := k.Derive(path)
		if err != nil {
			return errors.Wrapf(err, "derive %s", path)
		}
		if countFlag == 0 {
			return printKey(cmd.OutOrStdout(), base)
		}
		rows, err := deriveRange(base, path, startFlag, countFlag)
		if err != nil {
			return err
		}
		return printRows(cmd.OutOrStdout(), rows)
	},
}

func init() {
	deriveCmd.Flags().Uint32VarP(&countFlag, "count", "c", 0, "number of consecutive children to derive")
	deriveCmd.Flags().Uint32VarP(&startFlag, "start", "s", 0, "first child index when --count is set")
	rootCmd.AddCommand(deriveCmd)
}

type childRow struct {
	Path        string          `json:"path"`
	Index       uint32          `json:"index"`
	Fingerprint string          `json:"fingerPrint"`
	PublicKey   *crypto.ECPoint `json:"publicKey"`
	XPubKey     string          `json:"xpubkey"`
}

func deriveRange(base *ckd.ExtendedPublicKey, path string, start, count uint32) ([]childRow, error) {
	rows := make([]childRow, 0, count)
	path = strings.TrimSuffix(path, "/")
	for i := uint32(0); i < count; i++ {
		idx := ckd.NewIndex(start + i)
		child, err := base.DeriveIndex(idx)
		if err != nil {
			return nil, errors.Wrapf(err, "derive %s/%s", path, idx)
		}
		rows = append(rows, childRow{
			Path:        path + "/" + strconv.FormatUint(uint64(start+i), 10),
			Index:       start + i,
			Fingerprint: hex.EncodeToString(child.Fingerprint()),
			PublicKey:   child.Point(),
			XPubKey:     child.String(),
		})
	}
	return rows, nil
}

func printRows(w io.Writer, rows []childRow) error {
	if jsonFlag {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Fingerprint", "Public Key", "Extended Key"})
	table.SetAutoWrapText(false)
	for _, r := range rows {
		table.Append([]string{r.Path, r.Fingerprint, r.PublicKey.String(), r.XPubKey})
	}
	table.Render()
	return nil
}
