// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/config"
	"github.com/holomush/authcore/pkg/errutil"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// cheapHasherArgs keeps argon2 fast in tests.
var cheapHasherArgs = []string{"--hasher-memory=64", "--hasher-iterations=1"}

// isolateEnv points config lookups at an empty XDG dir and sets the secret.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvTokenSecret, testSecret)
	t.Setenv(config.EnvDatabaseURL, "")
}

type result struct {
	out  string
	logs string
	err  error
}

func execute(t *testing.T, deps *Deps, stdin string, args ...string) result {
	t.Helper()
	var out, logs bytes.Buffer
	if deps == nil {
		deps = &Deps{}
	}
	deps.LogOutput = &logs

	cmd := newRootCmd(deps)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(append([]string{}, cheapHasherArgs...), args...))

	err := cmd.ExecuteContext(context.Background())
	return result{out: out.String(), logs: logs.String(), err: err}
}

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, sub := range []string{"signup", "login", "verify-2fa", "logout", "verify-token", "shell", "migrate"} {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
}

func TestSignupCommand(t *testing.T) {
	isolateEnv(t)

	res := execute(t, nil, "", "signup", "alice@example.com", "password123", "--2fa")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "status: 201")
	assert.Contains(t, res.out, "outcome: signed_up")
	assert.Contains(t, res.out, "email: alice@example.com")
}

func TestSignupCommand_InvalidInput(t *testing.T) {
	isolateEnv(t)

	res := execute(t, nil, "", "signup", "not-an-email", "password123")
	errutil.AssertErrorCode(t, res.err, "REQUEST_REJECTED")
	assert.Contains(t, res.out, "status: 400")
	assert.Contains(t, res.out, "reason: invalid_credentials")
}

func TestLoginCommand_UnknownUser(t *testing.T) {
	isolateEnv(t)

	res := execute(t, nil, "", "login", "nobody@example.com", "password123")
	errutil.AssertErrorCode(t, res.err, "REQUEST_REJECTED")
	assert.Contains(t, res.out, "status: 401")
	assert.Contains(t, res.out, "reason: incorrect_credentials")
	assert.NotContains(t, res.logs, "password123")
}

func TestVerifyTokenCommand_Garbage(t *testing.T) {
	isolateEnv(t)

	res := execute(t, nil, "", "verify-token", "not.a.jwt")
	errutil.AssertErrorCode(t, res.err, "REQUEST_REJECTED")
	assert.Contains(t, res.out, "status: 401")
	assert.Contains(t, res.out, "reason: invalid_token")
}

func TestCommand_WrongArgCount(t *testing.T) {
	isolateEnv(t)

	res := execute(t, nil, "", "login", "alice@example.com")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "accepts between 2 and 2 arg(s)")
}

func TestCommand_MissingSecret(t *testing.T) {
	isolateEnv(t)
	t.Setenv(config.EnvTokenSecret, "")

	res := execute(t, nil, "", "verify-token", "x")
	errutil.AssertErrorCode(t, res.err, "CONFIG_INVALID")
}

func TestCommand_PrintMetrics(t *testing.T) {
	isolateEnv(t)

	res := execute(t, nil, "", "signup", "alice@example.com", "password123", "--print-metrics")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, `authcore_outcomes_total{operation="signup",outcome="signed_up"`)
	assert.Contains(t, res.out, `authcore_password_hash_seconds_count{op="hash"} 1`)
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default()
		b, err := openBackends(ctx, &cfg, nil)
		require.NoError(t, err)
		defer b.Close()
		assert.NotNil(t, b.Users)
		assert.NotNil(t, b.Challenges)
		assert.NotNil(t, b.Banned)
	})

	t.Run("durable with bad database url", func(t *testing.T) {
		cfg := config.Default()
		cfg.Backend = config.BackendDurable
		cfg.Database.URL = "://bad"
		cfg.Redis.Addr = "localhost:6379"
		_, err := openBackends(ctx, &cfg, nil)
		errutil.AssertErrorCode(t, err, "DB_CONFIG_INVALID")
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Backend = "sqlite"
		_, err := openBackends(ctx, &cfg, nil)
		errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	})
}
