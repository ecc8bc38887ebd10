// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/pvctl/pkg/adapter/restful/gin"
	"github.com/momeni/pvctl/pkg/adapter/restful/gin/routes"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the validate, sync, and bump operations as REST APIs",
	Long: `Serve the validate, sync, and bump operations as REST APIs under
the /api/pvctl/v1 path. Requests are served one at a time, so they
can not overwrite each other's changes. The server stops gracefully
on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: startWebServer,
}

func init() {
	serveCmd.Flags().StringVar(
		&serveAddr, "addr", "", "listening address, e.g., 127.0.0.1:8080",
	)
	rootCmd.AddCommand(serveCmd)
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(env.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	s := env.cfg.Server
	var e *gin.Engine = s.NewEngine()
	if err := routes.Register(e, env.cfg, env.root); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	err := gin.Serve(
		ctx, e, *s.Addr, time.Duration(*s.ReadHeaderTimeout),
	)
	if err != nil {
		return fmt.Errorf("serving Gin engine: %w", err)
	}
	return nil
}
