// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

// Outcome is the result of an orchestrator operation. It is one of
// SignedUp, Authenticated, ChallengePending, LoggedOut, TokenValid or Rejected.
type Outcome interface {
	outcome()
	// Name is a stable lowercase label used in logs and metrics.
	Name() string
}

// RejectReason is the caller-visible reason an operation was refused.
type RejectReason string

// Rejection reasons. Internal causes collapse onto these so that the caller
// cannot tell an unknown email from a wrong password, or an expired token
// from a forged one.
const (
	RejectInvalidCredentials   RejectReason = "invalid_credentials"
	RejectIncorrectCredentials RejectReason = "incorrect_credentials"
	RejectAlreadyExists        RejectReason = "already_exists"
	RejectMissingToken         RejectReason = "missing_token"
	RejectInvalidToken         RejectReason = "invalid_token"
)

// SignedUp reports that a new user was stored.
type SignedUp struct {
	Email Email
}

// Authenticated carries the session token minted for a completed login.
type Authenticated struct {
	Token SessionToken
}

// ChallengePending reports that a second factor is required. The code is
// delivered out of band; only the attempt id is returned to the caller.
type ChallengePending struct {
	Email     Email
	AttemptID LoginAttemptID
}

// LoggedOut reports that the presented token was revoked.
type LoggedOut struct {
	Email Email
}

// TokenValid reports that a presented token is currently trusted.
type TokenValid struct {
	Email Email
}

// Rejected reports a refused operation. Cause keeps the internal error for
// logging; it must not be shown to the caller.
type Rejected struct {
	Reason RejectReason
	Cause  error
}

func (SignedUp) outcome()         {}
func (Authenticated) outcome()    {}
func (ChallengePending) outcome() {}
func (LoggedOut) outcome()        {}
func (TokenValid) outcome()       {}
func (Rejected) outcome()         {}

// Name implements Outcome.
func (SignedUp) Name() string { return "signed_up" }

// Name implements Outcome.
func (Authenticated) Name() string { return "authenticated" }

// Name implements Outcome.
func (ChallengePending) Name() string { return "challenge_pending" }

// Name implements Outcome.
func (LoggedOut) Name() string { return "logged_out" }

// Name implements Outcome.
func (TokenValid) Name() string { return "token_valid" }

// Name implements Outcome.
func (Rejected) Name() string { return "rejected" }

// Error lets a Rejected be returned or logged as an error.
func (r Rejected) Error() string {
	if r.Cause != nil {
		return string(r.Reason) + ": " + r.Cause.Error()
	}
	return string(r.Reason)
}

// Unwrap exposes the internal cause to errors.Is.
func (r Rejected) Unwrap() error {
	return r.Cause
}
