// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
)

// ChallengeTTL bounds how long an issued second-factor code stays verifiable.
const ChallengeTTL = 10 * time.Minute

// TwoFACodeLength is the number of digits in a second-factor code.
const TwoFACodeLength = 6

const (
	minTwoFACode = 100000
	maxTwoFACode = 999999
)

// LoginAttemptID correlates a pending challenge with the login call that created it.
type LoginAttemptID struct {
	id uuid.UUID
}

// NewLoginAttemptID returns a fresh random (v4) attempt id.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{id: uuid.New()}
}

// ParseLoginAttemptID parses the canonical UUID form produced by String.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return LoginAttemptID{}, oops.Code("ATTEMPT_ID_INVALID").
			With("attempt_id", raw).
			Wrapf(ErrValidation, "invalid login attempt id: %s", err.Error())
	}
	return LoginAttemptID{id: id}, nil
}

// String returns the canonical hyphenated UUID.
func (a LoginAttemptID) String() string {
	return a.id.String()
}

// TwoFACode is a six digit numeric second-factor code.
type TwoFACode struct {
	code string
}

// NewTwoFACode draws a code uniformly from [100000, 999999].
func NewTwoFACode() TwoFACode {
	n := minTwoFACode + rand.IntN(maxTwoFACode-minTwoFACode+1) //nolint:gosec // G404: codes are short-lived and single-use
	return TwoFACode{code: strconv.Itoa(n)}
}

// ParseTwoFACode accepts exactly six ASCII digits.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	if len(raw) != TwoFACodeLength {
		return TwoFACode{}, oops.Code("CODE_INVALID_LENGTH").
			With("length", len(raw)).
			Wrapf(ErrValidation, "2FA code must be %d digits", TwoFACodeLength)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return TwoFACode{}, oops.Code("CODE_NOT_NUMERIC").
				Wrapf(ErrValidation, "2FA code must be numeric")
		}
	}
	return TwoFACode{code: raw}, nil
}

// String returns the digits.
func (c TwoFACode) String() string {
	return c.code
}

// ChallengeStore holds at most one pending second-factor challenge per email.
type ChallengeStore interface {
	// Issue stores the challenge for email, replacing any existing one.
	Issue(ctx context.Context, email Email, attemptID LoginAttemptID, code TwoFACode) error

	// CheckAndConsume deletes the challenge for email if both attemptID and
	// code match. Returns ErrNotFound if no live challenge exists and
	// ErrChallengeMismatch if either value differs; a mismatch leaves the
	// challenge in place. Concurrent consumers of the same challenge see
	// exactly one success.
	CheckAndConsume(ctx context.Context, email Email, attemptID LoginAttemptID, code TwoFACode) error
}

// ChallengeNotFound builds the error stores return when no live challenge exists.
func ChallengeNotFound(email Email) error {
	return oops.Code("CHALLENGE_NOT_FOUND").
		With("email", email.String()).
		Wrap(ErrNotFound)
}

// ChallengeMismatch builds the error stores return when a challenge exists but does not match.
func ChallengeMismatch(email Email) error {
	return oops.Code("CHALLENGE_MISMATCH").
		With("email", email.String()).
		Wrap(ErrChallengeMismatch)
}
