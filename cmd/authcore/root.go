// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/authcore/internal/config"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configFile   string
	printMetrics bool
}

// NewRootCmd creates the root command for the authcore CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

func newRootCmd(deps *Deps) *cobra.Command {
	deps = deps.withDefaults()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "authcore",
		Short: "authcore - session credentials with optional second factor",
		Long: `authcore signs users up, logs them in (with an optional emailed
second-factor code), and issues, verifies and revokes session tokens.

Each request command prints the outcome and the HTTP status a web
front-end would answer with. The memory backend keeps no state between
invocations; use "authcore shell" to run several requests against it.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file path (default: $XDG_CONFIG_HOME/authcore/config.yaml)")
	pf.BoolVar(&opts.printMetrics, "print-metrics", false, "print Prometheus metrics when the command finishes")
	config.RegisterFlags(pf)

	for _, op := range operations {
		cmd.AddCommand(newOperationCmd(op, opts, deps))
	}
	cmd.AddCommand(newShellCmd(opts, deps))
	cmd.AddCommand(newMigrateCmd(opts, deps))

	return cmd
}
