// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"log/slog"
)

// CodeSender delivers a second-factor code to the user out of band.
type CodeSender interface {
	SendCode(ctx context.Context, email Email, attemptID LoginAttemptID, code TwoFACode) error
}

// LogCodeSender "delivers" codes by logging them. For development and the CLI only.
type LogCodeSender struct {
	logger *slog.Logger
}

var _ CodeSender = (*LogCodeSender)(nil)

// NewLogCodeSender writes codes to logger, or slog.Default if nil.
func NewLogCodeSender(logger *slog.Logger) *LogCodeSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogCodeSender{logger: logger}
}

// SendCode implements CodeSender.
func (s *LogCodeSender) SendCode(ctx context.Context, email Email, attemptID LoginAttemptID, code TwoFACode) error {
	s.logger.InfoContext(ctx, "2FA code issued",
		"email", email.String(),
		"attempt_id", attemptID.String(),
		"code", code.String())
	return nil
}
