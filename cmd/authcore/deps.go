// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"io"

	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/auth/memory"
	"github.com/holomush/authcore/internal/auth/postgres"
	"github.com/holomush/authcore/internal/auth/redis"
	"github.com/holomush/authcore/internal/config"
	"github.com/holomush/authcore/internal/store"
)

// Deps contains injectable dependencies for the CLI.
// All fields with nil values will use their default implementations.
type Deps struct {
	// BackendFactory opens the three stores for cfg.Backend.
	// Default: openBackends
	BackendFactory func(ctx context.Context, cfg *config.Config, hasher auth.PasswordHasher) (*Backends, error)

	// MigratorFactory creates a schema migrator for a database URL.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (Migrator, error)

	// LogOutput receives log lines. Default: the command's stderr.
	LogOutput io.Writer
}

// Backends are the stores the service runs on. Close releases any
// connections they hold.
type Backends struct {
	Users      auth.UserStore
	Challenges auth.ChallengeStore
	Banned     auth.BannedTokenStore
	Close      func()
}

// Migrator wraps the methods used by the migrate command from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Pending() ([]uint, error)
	Close() error
}

func (d *Deps) withDefaults() *Deps {
	out := Deps{}
	if d != nil {
		out = *d
	}
	if out.BackendFactory == nil {
		out.BackendFactory = openBackends
	}
	if out.MigratorFactory == nil {
		out.MigratorFactory = func(url string) (Migrator, error) {
			return store.NewMigrator(url)
		}
	}
	return &out
}

// openBackends builds in-memory stores or connects to PostgreSQL and Redis.
func openBackends(ctx context.Context, cfg *config.Config, hasher auth.PasswordHasher) (*Backends, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return &Backends{
			Users:      memory.NewUserStore(hasher),
			Challenges: memory.NewChallengeStore(),
			Banned:     memory.NewBannedTokenStore(),
			Close:      func() {},
		}, nil

	case config.BackendDurable:
		pool, err := store.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		client, err := store.NewRedisClient(ctx, store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Backends{
			Users:      postgres.NewUserStore(pool, hasher),
			Challenges: redis.NewChallengeStore(client),
			Banned:     redis.NewBannedTokenStore(client),
			Close: func() {
				_ = client.Close()
				pool.Close()
			},
		}, nil

	default:
		return nil, oops.Code("CONFIG_INVALID").Errorf("unknown backend %q", cfg.Backend)
	}
}
