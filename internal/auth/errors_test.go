// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/holomush/authcore/internal/auth"
)

func TestClassify(t *testing.T) {
	email := auth.MustParseEmail("a@b.com")
	_, parseErr := auth.ParseEmail("bad")

	tests := []struct {
		name string
		err  error
		want auth.Category
	}{
		{"nil", nil, auth.CategoryUnexpected},
		{"validation", parseErr, auth.CategoryBadInput},
		{"user not found", auth.UserNotFound(email), auth.CategoryIncorrectCredentials},
		{"invalid credentials", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(auth.ErrInvalidCredentials), auth.CategoryIncorrectCredentials},
		{"challenge missing", auth.ChallengeNotFound(email), auth.CategoryIncorrectCredentials},
		{"challenge mismatch", auth.ChallengeMismatch(email), auth.CategoryIncorrectCredentials},
		{"already exists", auth.UserAlreadyExists(email), auth.CategoryConflict},
		{"expired", oops.Code("TOKEN_EXPIRED").Wrap(auth.ErrTokenExpired), auth.CategoryInvalidToken},
		{"bad signature", auth.ErrTokenBadSignature, auth.CategoryInvalidToken},
		{"revoked", auth.ErrTokenRevoked, auth.CategoryInvalidToken},
		{"malformed", auth.ErrTokenMalformed, auth.CategoryInvalidToken},
		{"storage", errors.New("connection reset"), auth.CategoryUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Classify(tt.err))
		})
	}
}

func TestTokenReasonsAreDistinct(t *testing.T) {
	reasons := []error{auth.ErrTokenExpired, auth.ErrTokenBadSignature, auth.ErrTokenRevoked, auth.ErrTokenMalformed}
	for i, a := range reasons {
		assert.ErrorIs(t, a, auth.ErrInvalidToken)
		for j, b := range reasons {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		out  auth.Outcome
		err  error
		want int
	}{
		{"signed up", auth.SignedUp{}, nil, http.StatusCreated},
		{"authenticated", auth.Authenticated{}, nil, http.StatusOK},
		{"challenge pending", auth.ChallengePending{}, nil, http.StatusPartialContent},
		{"logged out", auth.LoggedOut{}, nil, http.StatusOK},
		{"token valid", auth.TokenValid{}, nil, http.StatusOK},
		{"malformed input", auth.Rejected{Reason: auth.RejectInvalidCredentials}, nil, http.StatusBadRequest},
		{"incorrect credentials", auth.Rejected{Reason: auth.RejectIncorrectCredentials}, nil, http.StatusUnauthorized},
		{"conflict", auth.Rejected{Reason: auth.RejectAlreadyExists}, nil, http.StatusConflict},
		{"missing token", auth.Rejected{Reason: auth.RejectMissingToken}, nil, http.StatusBadRequest},
		{"invalid token", auth.Rejected{Reason: auth.RejectInvalidToken}, nil, http.StatusUnauthorized},
		{"unexpected", nil, errors.New("boom"), http.StatusInternalServerError},
		{"nil outcome", nil, nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.HTTPStatus(tt.out, tt.err))
		})
	}
}

func TestRejected_Error(t *testing.T) {
	cause := auth.ChallengeNotFound(auth.MustParseEmail("a@b.com"))
	rej := auth.Rejected{Reason: auth.RejectIncorrectCredentials, Cause: cause}

	assert.Contains(t, rej.Error(), "incorrect_credentials")
	assert.ErrorIs(t, rej, auth.ErrNotFound)
	assert.Equal(t, "missing_token", auth.Rejected{Reason: auth.RejectMissingToken}.Error())
	assert.Equal(t, "rejected", rej.Name())
}
