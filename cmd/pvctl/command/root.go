// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the pvctl
// program. Commands are organized using the cobra library.
// The root command validates the registry manifest against the unit
// manifests while sub-commands can sync, bump, or serve them.
//
//	./pvctl [validate] [-q] [--json] [-c /path/of/config.yaml]
//	./pvctl sync [-d]
//	./pvctl bump [NAME] (-b|-i) major|minor|patch [-p NAME] [-a] [-d]
//	./pvctl serve [--addr host:port]
//	./pvctl config
//	./pvctl version
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/momeni/pvctl/pkg/adapter/config"
	"github.com/momeni/pvctl/pkg/adapter/config/cfg1"
	"github.com/momeni/pvctl/pkg/adapter/config/settings"
	"github.com/momeni/pvctl/pkg/adapter/reporter/jsonr"
	"github.com/momeni/pvctl/pkg/adapter/reporter/text"
	"github.com/momeni/pvctl/pkg/core/cerr"
	"github.com/momeni/pvctl/pkg/core/log"
	"github.com/momeni/pvctl/pkg/core/usecase/reconuc"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgPath    string
	rootDir    string
	colorMode  string
	jsonOutput bool
	quiet      bool
	logLevel   string
	logFormat  string
)

// environment holds the state which is prepared by the setup function
// before running any command.
type environment struct {
	ctx  context.Context
	cfg  *cfg1.Config
	root string
}

var env environment

var rootCmd = &cobra.Command{
	Use:   "pvctl",
	Short: "Track and manage plugin versions in the marketplace",
	Long: `Track and manage plugin versions in the marketplace.
The registry manifest (e.g., .claude-plugin/marketplace.json) lists all
plugins with their versions, while each plugin may have its own unit
manifest (e.g., plugins/NAME/.claude-plugin/plugin.json) with a version
too. Running pvctl without a sub-command validates that both versions
of every plugin match, the sync sub-command converges them to their
higher versions, and the bump sub-command increments them together.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setup,
	RunE:              runValidate,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The process exits
// with the code which is chosen based on the error condition.
func Execute() {
	ctx := context.Background()
	os.Exit(Run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the rootCmd with args, writing the reports into stdout
// and the logs and errors into stderr, and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.ExecuteContext(ctx)
	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		msg := err
		var ce *cerr.Error
		if errors.As(err, &ce) {
			msg = ce.Err // status codes are meaningful for http only
		}
		fmt.Fprintln(stderr, "Error:", msg)
	}
	return exitCode(err)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "config file path")
	pf.StringVar(&rootDir, "root", ".", "workspace root directory")
	pf.StringVar(
		&colorMode, "color", cfg1.DefaultColor,
		"colorize the output: auto, always, or never",
	)
	pf.BoolVar(&jsonOutput, "json", false, "output the reports as JSON")
	pf.BoolVarP(
		&quiet, "quiet", "q", false,
		"only output errors and mismatches",
	)
	pf.StringVar(
		&logLevel, "log-level", cfg1.DefaultLogLevel,
		"log level: debug, info, warn, or error",
	)
	pf.StringVar(
		&logFormat, "log-format", cfg1.DefaultLogFormat,
		"log format: text or json",
	)
}

// setup loads the configuration settings, applies the command line
// overrides, and installs the default slog logger before running the
// cmd command.
func setup(cmd *cobra.Command, _ []string) error {
	src := config.Locate(cfgPath, rootDir)
	c, err := src.Load()
	if err != nil {
		return fmt.Errorf("loading config %q: %w", src.Path, err)
	}
	if err = overrideConfig(cmd, c); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	h, err := c.Log.NewHandler(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("creating log handler: %w", err)
	}
	slog.SetDefault(slog.New(h))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env = environment{
		ctx:  log.WithAttrs(ctx, log.Invocation(uuid.NewString())),
		cfg:  c,
		root: rootDir,
	}
	log.Debug(env.ctx, "configured",
		log.String("config", src.Path), log.String("root", rootDir),
	)
	return nil
}

// overrideConfig overwrites the c settings by the flags which were set
// explicitly in the command line and validates the resulting settings.
func overrideConfig(cmd *cobra.Command, c *cfg1.Config) error {
	fs := cmd.Flags()
	if fs.Changed("color") {
		settings.Override(&c.Output.Color, colorMode)
	}
	if jsonOutput {
		settings.Override(&c.Output.Format, "json")
	}
	if fs.Changed("log-level") {
		settings.Override(&c.Log.Level, logLevel)
	}
	if fs.Changed("log-format") {
		settings.Override(&c.Log.Format, logFormat)
	}
	if fs.Changed("addr") {
		settings.Override(&c.Server.Addr, serveAddr)
	}
	return c.ValidateAndNormalize()
}

// newUseCase instantiates the reconciliation use case which reports
// into the cmd output writer with the configured format.
func newUseCase(cmd *cobra.Command) (*reconuc.UseCase, error) {
	uc, err := env.cfg.NewUseCase(
		env.root, reconuc.WithReporter(newReporter(cmd.OutOrStdout())),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reconciliation use case: %w", err)
	}
	return uc, nil
}

func newReporter(w io.Writer) reconuc.Reporter {
	if *env.cfg.Output.Format == "json" {
		return jsonr.New(w)
	}
	return text.New(w,
		text.WithColor(useColor(w, *env.cfg.Output.Color)),
		text.WithQuiet(quiet),
	)
}

// useColor decides if ANSI colors should be written into w based on
// the mode setting. The auto mode enables colors only if w is
// a terminal.
func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
