// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/config"
	"github.com/holomush/authcore/internal/logging"
	"github.com/holomush/authcore/internal/observability"
)

// app is a fully wired auth service for the lifetime of one command.
type app struct {
	svc      *auth.Service
	logger   *slog.Logger
	registry *prometheus.Registry
	close    func()
}

// loadConfig reads the config file, the command's flags and the environment.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command, opts *rootOptions, deps *Deps) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	logOut := deps.LogOutput
	if logOut == nil {
		logOut = cmd.ErrOrStderr()
	}
	logger := logging.Setup("authcore", version, cfg.Log.Format, cfg.Log.Level, logOut)
	registry, metrics := observability.NewRegistry()

	inner, err := auth.NewArgon2idHasher(cfg.HasherParams())
	if err != nil {
		return nil, err
	}
	hasher := auth.NewOffloadHasher(inner, cfg.Hasher.Workers, auth.WithHashObserver(metrics))

	backends, err := deps.BackendFactory(cmd.Context(), cfg, hasher)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService([]byte(cfg.Token.Secret), cfg.Token.TTL, backends.Banned,
		auth.WithTokenMetrics(metrics))
	if err != nil {
		backends.Close()
		return nil, err
	}

	svc, err := auth.NewService(backends.Users, backends.Challenges, tokens, backends.Banned,
		auth.WithLogger(logger),
		auth.WithMetrics(metrics))
	if err != nil {
		backends.Close()
		return nil, err
	}

	logger.Debug("auth service ready", "backend", cfg.Backend, "token_ttl", cfg.Token.TTL)
	return &app{svc: svc, logger: logger, registry: registry, close: backends.Close}, nil
}
