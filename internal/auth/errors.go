// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/oops"
)

// Sentinel errors. Concrete errors are oops errors wrapping one of these so
// callers can branch with errors.Is while logs keep the code and context.
var (
	// ErrValidation is wrapped by every input parsing failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when inserting a user whose email is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials is returned when a password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch is returned by PasswordHasher.Verify on mismatch.
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrChallengeMismatch is returned when a challenge exists but the attempt id or code differ.
	ErrChallengeMismatch = errors.New("challenge mismatch")

	// ErrInvalidToken is wrapped by every token validation failure.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired, ErrTokenBadSignature and ErrTokenRevoked distinguish
	// token failures for diagnostics. They all satisfy errors.Is(err, ErrInvalidToken).
	ErrTokenExpired      = tokenError("token expired")
	ErrTokenBadSignature = tokenError("token signature invalid")
	ErrTokenRevoked      = tokenError("token revoked")
	ErrTokenMalformed    = tokenError("token malformed")
)

type tokenReason struct{ msg string }

func tokenError(msg string) error { return &tokenReason{msg: msg} }

func (e *tokenReason) Error() string { return e.msg }

func (e *tokenReason) Is(target error) bool { return target == ErrInvalidToken }

// Category is the externally visible error class. Distinct internal causes
// collapse into one category so callers cannot probe which check failed.
type Category int

// Error categories.
const (
	CategoryUnexpected Category = iota
	CategoryBadInput
	CategoryIncorrectCredentials
	CategoryConflict
	CategoryInvalidToken
)

func (c Category) String() string {
	switch c {
	case CategoryBadInput:
		return "bad_input"
	case CategoryIncorrectCredentials:
		return "incorrect_credentials"
	case CategoryConflict:
		return "conflict"
	case CategoryInvalidToken:
		return "invalid_token"
	default:
		return "unexpected"
	}
}

// Classify maps an error to its external category.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnexpected
	case errors.Is(err, ErrValidation):
		return CategoryBadInput
	case errors.Is(err, ErrAlreadyExists):
		return CategoryConflict
	case errors.Is(err, ErrInvalidToken):
		return CategoryInvalidToken
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrChallengeMismatch):
		return CategoryIncorrectCredentials
	default:
		return CategoryUnexpected
	}
}

// HTTPStatus returns the status code an HTTP front-end should answer with for
// the given orchestrator result. A non-nil err always maps to 500.
func HTTPStatus(o Outcome, err error) int {
	if err != nil {
		return http.StatusInternalServerError
	}
	switch v := o.(type) {
	case SignedUp:
		return http.StatusCreated
	case Authenticated, LoggedOut, TokenValid:
		return http.StatusOK
	case ChallengePending:
		return http.StatusPartialContent
	case Rejected:
		switch v.Reason {
		case RejectInvalidCredentials, RejectMissingToken:
			return http.StatusBadRequest
		case RejectAlreadyExists:
			return http.StatusConflict
		default:
			return http.StatusUnauthorized
		}
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns the oops code of err, or "" for plain errors.
func errorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := oopsErr.Code(); code != nil {
			return fmt.Sprint(code)
		}
	}
	return ""
}
