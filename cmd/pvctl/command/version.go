// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/pvctl/pkg/adapter/config/cfg1"
	"github.com/spf13/cobra"
)

// Version is the pvctl release version. It is set at build time with
//
//	-ldflags "-X github.com/momeni/pvctl/cmd/pvctl/command.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pvctl and supported config versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(),
			"pvctl %s (config v%s)\n", Version, cfg1.Version.String(),
		)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
