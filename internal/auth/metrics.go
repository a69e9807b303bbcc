// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

// Metrics receives counters from the Service and TokenService.
// observability.Metrics is the production implementation.
type Metrics interface {
	// RecordOutcome counts one orchestrator call. reason is empty unless the
	// outcome is a rejection.
	RecordOutcome(operation, outcome string, reason RejectReason)

	// RecordTokenValidation counts one token check by result
	// (valid, expired, bad_signature, malformed, revoked, error).
	RecordTokenValidation(result string)
}

type noopMetrics struct{}

func (noopMetrics) RecordOutcome(string, string, RejectReason) {}

func (noopMetrics) RecordTokenValidation(string) {}
