// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads authcore settings from a YAML file, command-line
// flags and environment secrets, in increasing order of precedence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/logging"
	"github.com/holomush/authcore/internal/xdg"
)

// Backends.
const (
	BackendMemory  = "memory"
	BackendDurable = "durable"
)

// Environment variables holding secrets. They win over file and flags.
const (
	EnvTokenSecret = "AUTHCORE_TOKEN_SECRET"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config is the full authcore configuration.
type Config struct {
	Backend  string         `koanf:"backend"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Token    TokenConfig    `koanf:"token"`
	Hasher   HasherConfig   `koanf:"hasher"`
	Log      LogConfig      `koanf:"log"`
}

// DatabaseConfig locates the user database for the durable backend.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// RedisConfig locates the revocation and challenge store for the durable backend.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	Timeout  time.Duration `koanf:"timeout"`
}

// TokenConfig holds the signing key and session lifetime.
type TokenConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

// HasherConfig holds argon2id cost parameters and the executor size.
// Workers <= 0 means GOMAXPROCS.
type HasherConfig struct {
	Memory     uint32 `koanf:"memory"`
	Iterations uint32 `koanf:"iterations"`
	Threads    uint8  `koanf:"threads"`
	Workers    int    `koanf:"workers"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	params := auth.DefaultArgon2Params()
	return Config{
		Backend: BackendMemory,
		Redis:   RedisConfig{Timeout: 3 * time.Second},
		Token:   TokenConfig{TTL: auth.DefaultTokenTTL},
		Hasher: HasherConfig{
			Memory:     params.Memory,
			Iterations: params.Iterations,
			Threads:    params.Threads,
		},
		Log: LogConfig{Format: "text", Level: "info"},
	}
}

// RegisterFlags adds a flag for every non-secret key to fs. Flag names are
// keys with dots replaced by dashes, so --token-ttl sets token.ttl.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("backend", d.Backend, "storage backend (memory or durable)")
	fs.String("redis-addr", d.Redis.Addr, "redis address for the durable backend")
	fs.Int("redis-db", d.Redis.DB, "redis database number")
	fs.Duration("redis-timeout", d.Redis.Timeout, "redis dial and ping timeout")
	fs.Duration("token-ttl", d.Token.TTL, "session token lifetime")
	fs.Uint32("hasher-memory", d.Hasher.Memory, "argon2id memory in KiB")
	fs.Uint32("hasher-iterations", d.Hasher.Iterations, "argon2id iterations")
	fs.Uint8("hasher-threads", d.Hasher.Threads, "argon2id parallelism")
	fs.Int("hasher-workers", d.Hasher.Workers, "concurrent hash operations (0 = GOMAXPROCS)")
	fs.String("log-format", d.Log.Format, "log format (json or text)")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
}

// Load reads path (or the XDG default when path is empty and that file
// exists), applies flags from fs, then environment secrets. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	filePath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if filePath != "" {
		if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", filePath).Wrap(err)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			return strings.ReplaceAll(f.Name, "-", "."), posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("source", "flags").Wrap(err)
		}
	}

	for env, key := range map[string]string{EnvTokenSecret: "token.secret", EnvDatabaseURL: "database.url"} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			if err := k.Set(key, v); err != nil {
				return nil, oops.Code("CONFIG_LOAD_FAILED").With("env", env).Wrap(err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return &cfg, nil
}

// resolvePath returns the file to load, or "" when there is none. An
// explicit path must exist; the XDG default is optional.
func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	def, err := xdg.ConfigFile()
	if err != nil {
		return "", nil //nolint:nilerr // no home directory means no default file
	}
	if _, err := os.Stat(def); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", oops.Code("CONFIG_LOAD_FAILED").With("path", def).Wrap(err)
	}
	return def, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendDurable:
		if c.Database.URL == "" {
			return oops.Code("CONFIG_INVALID").Errorf("database url is required for the durable backend (set %s)", EnvDatabaseURL)
		}
		if c.Redis.Addr == "" {
			return oops.Code("CONFIG_INVALID").Errorf("redis addr is required for the durable backend")
		}
	default:
		return oops.Code("CONFIG_INVALID").Errorf("backend must be %q or %q, got %q", BackendMemory, BackendDurable, c.Backend)
	}

	if len(c.Token.Secret) < auth.MinSecretLength {
		return oops.Code("CONFIG_INVALID").
			Errorf("token secret must be at least %d bytes (set %s)", auth.MinSecretLength, EnvTokenSecret)
	}
	if c.Token.TTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token ttl must be positive, got %s", c.Token.TTL)
	}
	if err := c.HasherParams().Validate(); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return nil
}

// HasherParams returns the argon2id parameters with the default salt and
// key lengths.
func (c *Config) HasherParams() auth.Argon2Params {
	p := auth.DefaultArgon2Params()
	p.Memory = c.Hasher.Memory
	p.Iterations = c.Hasher.Iterations
	p.Threads = c.Hasher.Threads
	return p
}
