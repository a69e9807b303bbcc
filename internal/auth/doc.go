// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package auth is the credential lifecycle and token-trust engine.
//
// # Value Types
//
// Email, Password, LoginAttemptID and TwoFACode can only be obtained through
// their Parse* constructors (or New* generators for the last two), so holding
// one is proof that it passed validation. Parse failures wrap ErrValidation.
//
// # Stores
//
// Three persistence ports are consumed by the orchestrator:
//   - UserStore - user records keyed by email, hashing on insert
//   - BannedTokenStore - revoked session tokens with self-expiring entries
//   - ChallengeStore - at most one pending second-factor challenge per email
//
// Implementations live in the memory, postgres and redis subpackages.
//
// # Services
//
//   - TokenService - mints and validates HS256 session tokens
//   - OffloadHasher - runs argon2id off the request goroutines
//   - Service - the login orchestrator returning an Outcome per call
//
// Rejections are Outcomes, not errors: Rejected carries a caller-safe reason
// and the internal cause for logging. HTTPStatus maps a result to the status
// a front-end should answer with.
package auth
