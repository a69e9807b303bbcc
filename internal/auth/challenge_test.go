// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/pkg/errutil"
)

func TestLoginAttemptID_RoundTrip(t *testing.T) {
	for range 100 {
		id := auth.NewLoginAttemptID()
		parsed, err := auth.ParseLoginAttemptID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
		assert.Len(t, id.String(), 36)
	}
}

func TestLoginAttemptID_Fresh(t *testing.T) {
	seen := make(map[auth.LoginAttemptID]bool)
	for range 1000 {
		id := auth.NewLoginAttemptID()
		require.False(t, seen[id], "duplicate attempt id %s", id)
		seen[id] = true
	}
}

func TestParseLoginAttemptID_Invalid(t *testing.T) {
	for _, raw := range []string{"", "not-a-uuid", "1234", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz"} {
		_, err := auth.ParseLoginAttemptID(raw)
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, auth.ErrValidation)
		errutil.AssertErrorCode(t, err, "ATTEMPT_ID_INVALID")
	}
}

func TestNewTwoFACode_Range(t *testing.T) {
	for range 1000 {
		code := auth.NewTwoFACode()
		require.Len(t, code.String(), auth.TwoFACodeLength)
		n, err := strconv.Atoi(code.String())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)

		parsed, err := auth.ParseTwoFACode(code.String())
		require.NoError(t, err)
		assert.Equal(t, code, parsed)
	}
}

func TestParseTwoFACode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code string
	}{
		{"valid", "123456", ""},
		{"leading zero", "012345", ""},
		{"too short", "12345", "CODE_INVALID_LENGTH"},
		{"too long", "1234567", "CODE_INVALID_LENGTH"},
		{"empty", "", "CODE_INVALID_LENGTH"},
		{"letters", "12a456", "CODE_NOT_NUMERIC"},
		{"sign", "+12345", "CODE_NOT_NUMERIC"},
		{"spaces", "12 456", "CODE_NOT_NUMERIC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := auth.ParseTwoFACode(tt.raw)
			if tt.code == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.raw, c.String())
				return
			}
			assert.ErrorIs(t, err, auth.ErrValidation)
			errutil.AssertErrorCode(t, err, tt.code)
		})
	}
}
