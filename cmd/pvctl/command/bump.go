// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"errors"
	"fmt"

	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/spf13/cobra"
)

var (
	bumpType      string
	incrementType string
	bumpPlugin    string
	bumpAll       bool
	bumpDryRun    bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump [NAME]",
	Short: "Bump the version of one or all plugins",
	Long: `Bump the major, minor, or patch component of a plugin version,
updating both of the registry entry and its unit manifest (if it
exists). The plugin name may be given by the --plugin flag or as
a positional argument. The --all flag bumps all plugins instead and
reports the failures of individual plugins without stopping.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBump,
}

func init() {
	fs := bumpCmd.Flags()
	fs.StringVarP(
		&bumpType, "bump", "b", "", "component to bump: patch, minor, or major",
	)
	fs.StringVarP(
		&incrementType, "increment", "i", "", "same as --bump",
	)
	fs.StringVarP(&bumpPlugin, "plugin", "p", "", "plugin name to bump")
	fs.BoolVarP(&bumpAll, "all", "a", false, "bump all plugins")
	fs.BoolVarP(
		&bumpDryRun, "dry-run", "d", false,
		"show what would change without making changes",
	)
	rootCmd.AddCommand(bumpCmd)
}

// normalizeComponent merges the --bump and --increment flags into one
// version component. Both flags may be given only with the same value.
func normalizeComponent(bump, increment string) (model.Component, error) {
	switch {
	case bump == "" && increment == "":
		return "", errors.New("one of --bump or --increment is required")
	case bump == "":
		bump = increment
	case increment != "" && increment != bump:
		return "", fmt.Errorf(
			"conflicting --bump=%s and --increment=%s", bump, increment,
		)
	}
	return model.ParseComponent(bump)
}

// bumpTarget chooses the plugin name from the --plugin flag or the
// positional argument. An empty name means that none was given.
func bumpTarget(plugin string, args []string) (string, error) {
	if len(args) == 0 {
		return plugin, nil
	}
	if plugin != "" && plugin != args[0] {
		return "", fmt.Errorf(
			"conflicting plugin names: --plugin=%s and %s", plugin, args[0],
		)
	}
	return args[0], nil
}

func runBump(cmd *cobra.Command, args []string) error {
	c, err := normalizeComponent(bumpType, incrementType)
	if err != nil {
		return err
	}
	target, err := bumpTarget(bumpPlugin, args)
	if err != nil {
		return err
	}
	if target == "" && !bumpAll {
		return errors.New(
			"specify a plugin name (-p PLUGIN) or use --all to bump all plugins",
		)
	}
	uc, err := newUseCase(cmd)
	if err != nil {
		return err
	}
	if bumpAll {
		_, err = uc.BumpAll(env.ctx, c, bumpDryRun)
		return err
	}
	_, err = uc.Bump(env.ctx, target, c, bumpDryRun)
	return err
}
