// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/observability"
	"github.com/holomush/authcore/pkg/errutil"
)

func newShellCmd(opts *rootOptions, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run requests read from stdin against one service instance",
		Long: `Read one request per line from stdin and run it against a single
service, so in-memory state survives between requests. Lines use the
same syntax as the request commands, e.g.

  signup alice@example.com s3cretpass 2fa
  login alice@example.com s3cretpass
  verify-token $token

$token and $attempt expand to the last token and attempt id printed.
Blank lines and lines starting with # are ignored; "exit" stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts, deps)
			if err != nil {
				return err
			}
			defer a.close()

			if err := runShell(cmd, a, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			if opts.printMetrics {
				return observability.WriteText(cmd.OutOrStdout(), a.registry)
			}
			return nil
		},
	}
}

// shellVars holds values a later line can refer to.
type shellVars struct {
	token   string
	attempt string
}

func (v *shellVars) remember(out auth.Outcome) {
	switch o := out.(type) {
	case auth.Authenticated:
		v.token = o.Token.Value
	case auth.ChallengePending:
		v.attempt = o.AttemptID.String()
	}
}

func (v *shellVars) expand(args []string) []string {
	expanded := make([]string, len(args))
	for i, arg := range args {
		switch arg {
		case "$token":
			expanded[i] = v.token
		case "$attempt":
			expanded[i] = v.attempt
		default:
			expanded[i] = arg
		}
	}
	return expanded
}

// runShell processes lines until EOF or "exit". Request failures are printed
// and logged; only a read error stops the loop early.
func runShell(cmd *cobra.Command, a *app, in io.Reader, w io.Writer) error {
	var vars shellVars
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		name, args := fields[0], vars.expand(fields[1:])

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			for _, op := range operations {
				_, _ = fmt.Fprintf(w, "  %-40s %s\n", op.usage, op.short)
			}
			continue
		}

		op, ok := findOperation(name)
		if !ok {
			_, _ = fmt.Fprintf(w, "unknown command %q (try help)\n\n", name)
			continue
		}
		if len(args) < op.minArgs || len(args) > op.maxArgs {
			_, _ = fmt.Fprintf(w, "usage: %s\n\n", op.usage)
			continue
		}

		out, err := op.run(cmd.Context(), a.svc, args)
		if err != nil {
			errutil.LogErrorContext(cmd.Context(), a.logger, "shell request failed", err)
		}
		printOutcome(w, out, err)
		_, _ = fmt.Fprintln(w)
		vars.remember(out)
	}

	if err := scanner.Err(); err != nil {
		return oops.Code("SHELL_READ_FAILED").Wrap(err)
	}
	return nil
}
