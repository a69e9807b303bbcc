// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// User is a registered account. Records are immutable once stored.
type User struct {
	Email        Email
	PasswordHash string
	Requires2FA  bool
	CreatedAt    time.Time
}

// NewUser is a signup request: the plaintext password is hashed by the
// UserStore before anything is persisted.
type NewUser struct {
	Email       Email
	Password    Password
	Requires2FA bool
}

// UserStore owns user records keyed by email.
type UserStore interface {
	// Get returns the user for email or an error wrapping ErrNotFound.
	Get(ctx context.Context, email Email) (*User, error)

	// Validate checks password against the stored hash. Returns an error
	// wrapping ErrNotFound for unknown emails and ErrInvalidCredentials on
	// mismatch.
	Validate(ctx context.Context, email Email, password Password) error

	// Add hashes the password and inserts the user. Returns an error wrapping
	// ErrAlreadyExists if the email is taken; of two concurrent Adds for the
	// same email exactly one succeeds.
	Add(ctx context.Context, user NewUser) error
}

// dummyPasswordHash is verified against when the email is unknown so that the
// response time does not reveal whether an account exists. It uses the
// default cost parameters and matches no password.
//
//nolint:gosec // G101: intentionally fake hash, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=15000,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// UserNotFound builds the error stores return for an unknown email.
func UserNotFound(email Email) error {
	return oops.Code("USER_NOT_FOUND").
		With("email", email.String()).
		Wrap(ErrNotFound)
}

// UserAlreadyExists builds the error stores return for a taken email.
func UserAlreadyExists(email Email) error {
	return oops.Code("USER_ALREADY_EXISTS").
		With("email", email.String()).
		Wrap(ErrAlreadyExists)
}

// CheckPassword is the Validate step shared by UserStore implementations.
// user and lookupErr are the result of the store's own lookup. When the user
// is missing the dummy hash is still verified before lookupErr is returned.
func CheckPassword(ctx context.Context, hasher PasswordHasher, user *User, lookupErr error, password Password) error {
	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return lookupErr
		}
		_ = hasher.Verify(ctx, password, dummyPasswordHash)
		return lookupErr
	}

	err := hasher.Verify(ctx, password, user.PasswordHash)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrPasswordMismatch):
		return oops.Code("AUTH_INVALID_CREDENTIALS").
			With("email", user.Email.String()).
			Wrap(ErrInvalidCredentials)
	default:
		return oops.Code("VALIDATE_FAILED").
			With("email", user.Email.String()).
			Wrap(err)
	}
}
