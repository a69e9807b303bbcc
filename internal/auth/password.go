// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"unicode/utf8"

	"github.com/samber/oops"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// Password is a plaintext secret that satisfies the length policy.
// It formats as a redacted placeholder so it cannot leak through logs.
type Password struct {
	secret string
}

// ParsePassword validates raw against the password policy.
func ParsePassword(raw string) (Password, error) {
	if n := utf8.RuneCountInString(raw); n < MinPasswordLength {
		return Password{}, oops.Code("PASSWORD_TOO_SHORT").
			With("min", MinPasswordLength).
			With("length", n).
			Wrapf(ErrValidation, "password must be at least %d characters", MinPasswordLength)
	}
	return Password{secret: raw}, nil
}

// MustParsePassword is like ParsePassword but panics on invalid input.
func MustParsePassword(raw string) Password {
	p, err := ParsePassword(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Plaintext returns the secret. Only the password hasher should call this.
func (p Password) Plaintext() string {
	return p.secret
}

// String implements fmt.Stringer without revealing the secret.
func (p Password) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer without revealing the secret.
func (p Password) GoString() string {
	return "auth.Password{[REDACTED]}"
}
