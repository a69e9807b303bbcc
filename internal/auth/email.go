// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"regexp"
	"strings"

	"github.com/samber/oops"
)

// MaxEmailLength is the longest address accepted (RFC 5321 path limit minus brackets).
const MaxEmailLength = 254

// localPartRegex matches dot-separated atoms, so leading, trailing and
// doubled dots are rejected.
var localPartRegex = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+/=?^_{|}~-]+(\.[A-Za-z0-9!#$%&'*+/=?^_{|}~-]+)*$`)

// domainLabelRegex matches one DNS label: alphanumeric at both ends, hyphens inside.
var domainLabelRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)

// Email is a syntactically valid email address. The zero value is not valid;
// obtain instances through ParseEmail.
type Email struct {
	addr string
}

// ParseEmail validates raw as local-part@domain where the domain has at least
// two labels.
func ParseEmail(raw string) (Email, error) {
	if err := validateEmail(raw); err != nil {
		return Email{}, oops.Code("EMAIL_INVALID_FORMAT").
			With("email", raw).
			Wrapf(ErrValidation, "%q is not a valid email: %s", raw, err.Error())
	}
	return Email{addr: raw}, nil
}

// MustParseEmail is like ParseEmail but panics on invalid input.
// Intended for tests and constants.
func MustParseEmail(raw string) Email {
	e, err := ParseEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the address as given.
func (e Email) String() string {
	return e.addr
}

// IsZero reports whether e was not produced by ParseEmail.
func (e Email) IsZero() bool {
	return e.addr == ""
}

func validateEmail(raw string) error {
	if raw == "" {
		return oops.Errorf("empty")
	}
	if len(raw) > MaxEmailLength {
		return oops.Errorf("longer than %d bytes", MaxEmailLength)
	}
	if strings.Count(raw, "@") != 1 {
		return oops.Errorf("must contain exactly one '@'")
	}

	local, domain, _ := strings.Cut(raw, "@")
	if local == "" {
		return oops.Errorf("missing local part")
	}
	if !localPartRegex.MatchString(local) {
		return oops.Errorf("malformed local part")
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return oops.Errorf("domain must contain a dot")
	}
	for _, label := range labels {
		if !domainLabelRegex.MatchString(label) {
			return oops.Errorf("malformed domain")
		}
	}
	return nil
}
