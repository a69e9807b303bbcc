// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
)

func TestMetrics_RecordOutcome(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordOutcome(auth.OpLogin, "authenticated", "")
	m.RecordOutcome(auth.OpLogin, "rejected", auth.RejectIncorrectCredentials)
	m.RecordOutcome(auth.OpLogin, "rejected", auth.RejectIncorrectCredentials)

	assert.InDelta(t, 1, testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("login", "authenticated", "")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.OutcomesTotal.WithLabelValues("login", "rejected", "incorrect_credentials")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.OutcomesTotal))
}

func TestMetrics_RecordTokenValidation(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordTokenValidation("valid")
	m.RecordTokenValidation("revoked")

	expected := `
# HELP authcore_token_validations_total Total number of session token validations by result
# TYPE authcore_token_validations_total counter
authcore_token_validations_total{result="revoked"} 1
authcore_token_validations_total{result="valid"} 1
`
	require.NoError(t, testutil.CollectAndCompare(m.TokenValidationsTotal, strings.NewReader(expected)))
}

func TestMetrics_ObserveHash(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveHash("hash", 20*time.Millisecond)
	m.ObserveHash("verify", 30*time.Millisecond)
	m.ObserveHash("verify", 40*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.PasswordHashSeconds))
}

func TestNewMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}

func TestWriteText(t *testing.T) {
	registry, m := NewRegistry()
	m.RecordOutcome(auth.OpSignup, "rejected", auth.RejectAlreadyExists)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, registry))

	out := buf.String()
	assert.Contains(t, out, `authcore_outcomes_total{operation="signup",outcome="rejected",reason="already_exists"} 1`)
	assert.Contains(t, out, "go_goroutines")
}
