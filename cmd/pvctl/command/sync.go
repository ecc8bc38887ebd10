// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"github.com/spf13/cobra"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync versions using the highest version (never downgrades)",
	Long: `Sync the version of every registry entry and its unit manifest,
so both of them take the higher version. Plugins without a unit
manifest are skipped. Nothing is written in the dry-run mode.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(
		&syncDryRun, "dry-run", "d", false,
		"show what would change without making changes",
	)
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	uc, err := newUseCase(cmd)
	if err != nil {
		return err
	}
	_, err = uc.Sync(env.ctx, syncDryRun)
	return err
}
