// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blocks splits shell output into one chunk per request.
func blocks(out string) []string {
	var bs []string
	for _, b := range strings.Split(strings.TrimSpace(out), "\n\n") {
		if b = strings.TrimSpace(b); b != "" {
			bs = append(bs, b)
		}
	}
	return bs
}

func TestShell_TokenLifecycle(t *testing.T) {
	isolateEnv(t)

	script := `
# comments and blank lines are skipped
signup alice@example.com password123

signup alice@example.com password123
login alice@example.com wrongpassword
login alice@example.com password123
verify-token $token
logout $token
verify-token $token
logout $token
exit
verify-token never-run
`
	res := execute(t, nil, script, "shell")
	require.NoError(t, res.err)

	bs := blocks(res.out)
	require.Len(t, bs, 8, res.out)

	assert.Contains(t, bs[0], "status: 201")
	assert.Contains(t, bs[1], "status: 409")
	assert.Contains(t, bs[1], "reason: already_exists")
	assert.Contains(t, bs[2], "status: 401")
	assert.Contains(t, bs[2], "reason: incorrect_credentials")
	assert.Contains(t, bs[3], "status: 200")
	assert.Contains(t, bs[3], "outcome: authenticated")
	assert.Contains(t, bs[3], "token: ")
	assert.Contains(t, bs[4], "outcome: token_valid")
	assert.Contains(t, bs[5], "outcome: logged_out")
	assert.Contains(t, bs[6], "reason: invalid_token")
	assert.Contains(t, bs[7], "reason: invalid_token")
	assert.NotContains(t, res.out, "never-run")
}

func TestShell_TwoFactorChallenge(t *testing.T) {
	isolateEnv(t)

	script := `signup bob@example.com password123 2fa
login bob@example.com password123
verify-2fa bob@example.com $attempt 000000
verify-2fa bob@example.com not-a-uuid 123456
`
	res := execute(t, nil, script, "shell")
	require.NoError(t, res.err)

	bs := blocks(res.out)
	require.Len(t, bs, 4, res.out)
	assert.Contains(t, bs[1], "status: 206")
	assert.Contains(t, bs[1], "attempt_id: ")
	assert.NotContains(t, bs[1], "token:")
	// 000000 is never issued, so this is a mismatch.
	assert.Contains(t, bs[2], "status: 401")
	assert.Contains(t, bs[3], "status: 400")

	// The dev sender logs the code for the operator.
	assert.Contains(t, res.logs, "2FA code issued")
}

func TestShell_UsageErrors(t *testing.T) {
	isolateEnv(t)

	res := execute(t, nil, "frobnicate\nlogin only-one-arg\nhelp\n", "shell")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, `unknown command "frobnicate"`)
	assert.Contains(t, res.out, "usage: login <email> <password>")
	assert.Contains(t, res.out, "verify-2fa <email> <attempt-id> <code>")
}

func TestShellVars_Expand(t *testing.T) {
	v := shellVars{token: "tok", attempt: "att"}
	assert.Equal(t, []string{"tok", "att", "$other"}, v.expand([]string{"$token", "$attempt", "$other"}))
}
