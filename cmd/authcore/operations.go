// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/observability"
)

// operation is one request the CLI can send to the auth service.
type operation struct {
	name    string
	usage   string
	short   string
	minArgs int
	maxArgs int
	run     func(ctx context.Context, svc *auth.Service, args []string) (auth.Outcome, error)
}

// twoFAArg marks a signup as requiring a second factor.
const twoFAArg = "2fa"

var operations = []operation{
	{
		name:    "signup",
		usage:   "signup <email> <password> [2fa]",
		short:   "Register a new user",
		minArgs: 2,
		maxArgs: 3,
		run: func(ctx context.Context, svc *auth.Service, args []string) (auth.Outcome, error) {
			requires2FA := false
			for _, extra := range args[2:] {
				if extra != twoFAArg {
					return nil, oops.Code("USAGE").Errorf("third signup argument must be %q, got %q", twoFAArg, extra)
				}
				requires2FA = true
			}
			return svc.Signup(ctx, args[0], args[1], requires2FA)
		},
	},
	{
		name:    "login",
		usage:   "login <email> <password>",
		short:   "Log in and receive a token or a second-factor challenge",
		minArgs: 2,
		maxArgs: 2,
		run: func(ctx context.Context, svc *auth.Service, args []string) (auth.Outcome, error) {
			return svc.Login(ctx, args[0], args[1])
		},
	},
	{
		name:    "verify-2fa",
		usage:   "verify-2fa <email> <attempt-id> <code>",
		short:   "Complete a login with the emailed code",
		minArgs: 3,
		maxArgs: 3,
		run: func(ctx context.Context, svc *auth.Service, args []string) (auth.Outcome, error) {
			return svc.Verify2FA(ctx, args[0], args[1], args[2])
		},
	},
	{
		name:    "logout",
		usage:   "logout <token>",
		short:   "Revoke a session token",
		minArgs: 1,
		maxArgs: 1,
		run: func(ctx context.Context, svc *auth.Service, args []string) (auth.Outcome, error) {
			return svc.Logout(ctx, args[0])
		},
	},
	{
		name:    "verify-token",
		usage:   "verify-token <token>",
		short:   "Check whether a session token is trusted",
		minArgs: 1,
		maxArgs: 1,
		run: func(ctx context.Context, svc *auth.Service, args []string) (auth.Outcome, error) {
			return svc.VerifyToken(ctx, args[0])
		},
	},
}

func findOperation(name string) (operation, bool) {
	for _, op := range operations {
		if op.name == name {
			return op, true
		}
	}
	return operation{}, false
}

func newOperationCmd(op operation, opts *rootOptions, deps *Deps) *cobra.Command {
	var with2FA bool

	cmd := &cobra.Command{
		Use:   op.usage,
		Short: op.short,
		Args:  cobra.RangeArgs(op.minArgs, op.maxArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if with2FA {
				args = append(args, twoFAArg)
			}
			a, err := newApp(cmd, opts, deps)
			if err != nil {
				return err
			}
			defer a.close()

			out, err := op.run(cmd.Context(), a.svc, args)
			printOutcome(cmd.OutOrStdout(), out, err)
			if opts.printMetrics {
				if merr := observability.WriteText(cmd.OutOrStdout(), a.registry); merr != nil {
					return merr
				}
			}
			if err != nil {
				return err
			}
			if rej, ok := out.(auth.Rejected); ok {
				return oops.Code("REQUEST_REJECTED").
					With("reason", string(rej.Reason)).
					Errorf("request rejected: %s", rej.Reason)
			}
			return nil
		},
	}

	if op.name == "signup" {
		cmd.Flags().BoolVar(&with2FA, "2fa", false, "require a second factor at login")
	}
	return cmd
}

// printOutcome writes the result as "key: value" lines, status first.
func printOutcome(w io.Writer, out auth.Outcome, err error) {
	_, _ = fmt.Fprintf(w, "status: %d\n", auth.HTTPStatus(out, err))
	if err != nil {
		_, _ = fmt.Fprintln(w, "outcome: error")
		return
	}
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "outcome: %s\n", out.Name())

	switch o := out.(type) {
	case auth.SignedUp:
		_, _ = fmt.Fprintf(w, "email: %s\n", o.Email)
	case auth.Authenticated:
		_, _ = fmt.Fprintf(w, "email: %s\n", o.Token.Subject)
		_, _ = fmt.Fprintf(w, "token: %s\n", o.Token.Value)
		_, _ = fmt.Fprintf(w, "expires_at: %s\n", o.Token.ExpiresAt.Format(time.RFC3339))
	case auth.ChallengePending:
		_, _ = fmt.Fprintf(w, "email: %s\n", o.Email)
		_, _ = fmt.Fprintf(w, "attempt_id: %s\n", o.AttemptID)
	case auth.LoggedOut:
		_, _ = fmt.Fprintf(w, "email: %s\n", o.Email)
	case auth.TokenValid:
		_, _ = fmt.Fprintf(w, "email: %s\n", o.Email)
	case auth.Rejected:
		_, _ = fmt.Fprintf(w, "reason: %s\n", o.Reason)
	}
}
