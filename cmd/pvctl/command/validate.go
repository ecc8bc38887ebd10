// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate that all versions match (default action)",
	Long: `Validate that the version of every registry entry matches the
version of its unit manifest. The exit code is 0 if all versions match,
1 if some versions mismatch, 2 if some unit manifests are missing, and
3 if some unit manifests are unreadable. Mismatches take precedence
over the unreadable manifests which take precedence over the missing
ones.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	uc, err := newUseCase(cmd)
	if err != nil {
		return err
	}
	rep, err := uc.Validate(env.ctx)
	if err != nil {
		return err
	}
	if code := validationExitCode(rep.Status); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}
