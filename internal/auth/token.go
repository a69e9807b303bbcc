// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MinSecretLength is the shortest HMAC signing key accepted.
const MinSecretLength = 32

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 10 * time.Minute

// SessionToken is a signed, time-bounded assertion of identity. Value is the
// opaque string handed to the client.
type SessionToken struct {
	Value     string
	Subject   Email
	ExpiresAt time.Time
}

// TokenClaims are the trusted claims of a validated token.
type TokenClaims struct {
	Subject   Email
	ExpiresAt time.Time
	ID        string
}

// TokenService mints and validates HS256 session tokens.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	banned  BannedTokenStore
	now     func() time.Time
	metrics Metrics
	parser  *jwt.Parser
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTokenClock overrides the clock used for issuing and expiry checks.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// WithTokenMetrics records validation results.
func WithTokenMetrics(m Metrics) TokenOption {
	return func(s *TokenService) {
		s.metrics = m
	}
}

// NewTokenService creates a TokenService. A missing or short secret is a
// configuration error.
func NewTokenService(secret []byte, ttl time.Duration, banned BannedTokenStore, opts ...TokenOption) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, oops.Code("TOKEN_SECRET_INVALID").
			With("min_length", MinSecretLength).
			Errorf("token secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, oops.Code("TOKEN_TTL_INVALID").With("ttl", ttl).Errorf("token ttl must be positive")
	}
	if banned == nil {
		return nil, oops.Errorf("banned token store is required")
	}

	s := &TokenService{
		secret:  append([]byte(nil), secret...),
		ttl:     ttl,
		banned:  banned,
		now:     time.Now,
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	return s, nil
}

// TTL returns the session lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a token for email expiring TTL from now. Every call yields a
// distinct token.
func (s *TokenService) Issue(email Email) (SessionToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   email.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        ulid.Make().String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return SessionToken{}, oops.Code("TOKEN_SIGN_FAILED").
			With("email", email.String()).
			Wrap(err)
	}

	return SessionToken{
		Value:     signed,
		Subject:   email,
		ExpiresAt: claims.ExpiresAt.UTC(),
	}, nil
}

// Validate checks signature, expiry and revocation, in that order. Every
// rejection wraps ErrInvalidToken; the specific reason (ErrTokenExpired,
// ErrTokenBadSignature, ErrTokenMalformed, ErrTokenRevoked) is available to
// errors.Is for logging. A revocation lookup failure is returned as an
// unexpected error that does not wrap ErrInvalidToken.
func (s *TokenService) Validate(ctx context.Context, raw string) (*TokenClaims, error) {
	claims, err := s.verify(raw)
	if err != nil {
		return nil, err
	}

	revoked, err := s.banned.Contains(ctx, raw)
	if err != nil {
		s.metrics.RecordTokenValidation("error")
		return nil, oops.Code("TOKEN_CHECK_FAILED").
			With("operation", "check revocation").
			Wrap(err)
	}
	if revoked {
		s.metrics.RecordTokenValidation("revoked")
		return nil, oops.Code("TOKEN_REVOKED").
			With("subject", claims.Subject.String()).
			Wrap(ErrTokenRevoked)
	}

	s.metrics.RecordTokenValidation("valid")
	return claims, nil
}

func (s *TokenService) verify(raw string) (*TokenClaims, error) {
	var registered jwt.RegisteredClaims
	_, err := s.parser.ParseWithClaims(raw, &registered, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			s.metrics.RecordTokenValidation("expired")
			return nil, oops.Code("TOKEN_EXPIRED").Wrap(ErrTokenExpired)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			s.metrics.RecordTokenValidation("bad_signature")
			return nil, oops.Code("TOKEN_BAD_SIGNATURE").Wrap(ErrTokenBadSignature)
		default:
			s.metrics.RecordTokenValidation("malformed")
			return nil, oops.Code("TOKEN_MALFORMED").With("reason", err.Error()).Wrap(ErrTokenMalformed)
		}
	}

	subject, err := ParseEmail(registered.Subject)
	if err != nil {
		s.metrics.RecordTokenValidation("malformed")
		return nil, oops.Code("TOKEN_MALFORMED").With("reason", "subject is not an email").Wrap(ErrTokenMalformed)
	}

	return &TokenClaims{
		Subject:   subject,
		ExpiresAt: registered.ExpiresAt.UTC(),
		ID:        registered.ID,
	}, nil
}

// BannedTokenStore is the set of revoked tokens. Entries expire on their own.
type BannedTokenStore interface {
	// Add bans token for ttl. The caller computes ttl from the token's
	// remaining lifetime.
	Add(ctx context.Context, token string, ttl time.Duration) error

	// Contains reports whether token is banned.
	Contains(ctx context.Context, token string) (bool, error)
}
