// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
)

func TestLogCodeSender(t *testing.T) {
	var buf bytes.Buffer
	sender := auth.NewLogCodeSender(slog.New(slog.NewJSONHandler(&buf, nil)))
	attempt := auth.NewLoginAttemptID()
	code, err := auth.ParseTwoFACode("424242")
	require.NoError(t, err)

	require.NoError(t, sender.SendCode(context.Background(), auth.MustParseEmail("a@b.com"), attempt, code))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "a@b.com", entry["email"])
	assert.Equal(t, attempt.String(), entry["attempt_id"])
	assert.Equal(t, "424242", entry["code"])
}
