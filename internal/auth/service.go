// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/authcore/pkg/errutil"
)

var tracer = otel.Tracer("authcore/auth")

// Operation names used for spans, logs and metrics.
const (
	OpSignup      = "signup"
	OpLogin       = "login"
	OpVerify2FA   = "verify_2fa"
	OpLogout      = "logout"
	OpVerifyToken = "verify_token"
)

// Service is the login orchestrator. It holds no state of its own and is safe
// for concurrent use; all state lives in the injected stores.
//
// Every operation returns an Outcome. The error return is reserved for
// unexpected failures (storage, signing) and is non-nil only with a nil Outcome.
type Service struct {
	users      UserStore
	challenges ChallengeStore
	tokens     *TokenService
	banned     BannedTokenStore
	sender     CodeSender
	logger     *slog.Logger
	metrics    Metrics
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithMetrics records operation outcomes.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCodeSender sets how second-factor codes reach the user. Defaults to a
// LogCodeSender on the service logger.
func WithCodeSender(cs CodeSender) Option {
	return func(s *Service) {
		s.sender = cs
	}
}

// WithClock overrides the clock used to compute revocation TTLs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service.
func NewService(users UserStore, challenges ChallengeStore, tokens *TokenService, banned BannedTokenStore, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("user store is required")
	}
	if challenges == nil {
		return nil, oops.Errorf("challenge store is required")
	}
	if tokens == nil {
		return nil, oops.Errorf("token service is required")
	}
	if banned == nil {
		return nil, oops.Errorf("banned token store is required")
	}

	s := &Service{
		users:      users,
		challenges: challenges,
		tokens:     tokens,
		banned:     banned,
		logger:     slog.Default(),
		metrics:    noopMetrics{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sender == nil {
		s.sender = NewLogCodeSender(s.logger)
	}
	return s, nil
}

// Signup stores a new user.
func (s *Service) Signup(ctx context.Context, rawEmail, rawPassword string, requires2FA bool) (out Outcome, err error) {
	ctx, span := tracer.Start(ctx, "auth.signup")
	defer func() { s.finish(ctx, span, OpSignup, out, err) }()

	email, password, perr := parseCredentials(rawEmail, rawPassword)
	if perr != nil {
		return Rejected{Reason: RejectInvalidCredentials, Cause: perr}, nil
	}
	span.SetAttributes(attribute.String("auth.email", email.String()))

	err = s.users.Add(ctx, NewUser{Email: email, Password: password, Requires2FA: requires2FA})
	switch {
	case err == nil:
		return SignedUp{Email: email}, nil
	case errors.Is(err, ErrAlreadyExists):
		return Rejected{Reason: RejectAlreadyExists, Cause: err}, nil
	default:
		return nil, oops.Code("SIGNUP_FAILED").
			With("operation", "add user").
			With("email", email.String()).
			Wrap(err)
	}
}

// Login checks the password and either mints a token or, for users that
// require a second factor, issues a challenge and returns ChallengePending.
func (s *Service) Login(ctx context.Context, rawEmail, rawPassword string) (out Outcome, err error) {
	ctx, span := tracer.Start(ctx, "auth.login")
	defer func() { s.finish(ctx, span, OpLogin, out, err) }()

	email, password, perr := parseCredentials(rawEmail, rawPassword)
	if perr != nil {
		return Rejected{Reason: RejectInvalidCredentials, Cause: perr}, nil
	}
	span.SetAttributes(attribute.String("auth.email", email.String()))

	if verr := s.users.Validate(ctx, email, password); verr != nil {
		if errors.Is(verr, ErrNotFound) || errors.Is(verr, ErrInvalidCredentials) {
			return Rejected{Reason: RejectIncorrectCredentials, Cause: verr}, nil
		}
		return nil, oops.Code("LOGIN_FAILED").
			With("operation", "validate credentials").
			With("email", email.String()).
			Wrap(verr)
	}

	user, err := s.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Rejected{Reason: RejectIncorrectCredentials, Cause: err}, nil
		}
		return nil, oops.Code("LOGIN_FAILED").
			With("operation", "get user").
			With("email", email.String()).
			Wrap(err)
	}

	if !user.Requires2FA {
		return s.authenticate(email, OpLogin)
	}

	attemptID := NewLoginAttemptID()
	code := NewTwoFACode()
	if err := s.challenges.Issue(ctx, email, attemptID, code); err != nil {
		return nil, oops.Code("LOGIN_FAILED").
			With("operation", "issue challenge").
			With("email", email.String()).
			Wrap(err)
	}
	if err := s.sender.SendCode(ctx, email, attemptID, code); err != nil {
		return nil, oops.Code("LOGIN_FAILED").
			With("operation", "send code").
			With("email", email.String()).
			Wrap(err)
	}

	return ChallengePending{Email: email, AttemptID: attemptID}, nil
}

// Verify2FA completes a pending login. A code can succeed at most once.
func (s *Service) Verify2FA(ctx context.Context, rawEmail, rawAttemptID, rawCode string) (out Outcome, err error) {
	ctx, span := tracer.Start(ctx, "auth.verify_2fa")
	defer func() { s.finish(ctx, span, OpVerify2FA, out, err) }()

	email, perr := ParseEmail(rawEmail)
	if perr != nil {
		return Rejected{Reason: RejectInvalidCredentials, Cause: perr}, nil
	}
	attemptID, perr := ParseLoginAttemptID(rawAttemptID)
	if perr != nil {
		return Rejected{Reason: RejectInvalidCredentials, Cause: perr}, nil
	}
	code, perr := ParseTwoFACode(rawCode)
	if perr != nil {
		return Rejected{Reason: RejectInvalidCredentials, Cause: perr}, nil
	}
	span.SetAttributes(
		attribute.String("auth.email", email.String()),
		attribute.String("auth.attempt_id", attemptID.String()),
	)

	if cerr := s.challenges.CheckAndConsume(ctx, email, attemptID, code); cerr != nil {
		if errors.Is(cerr, ErrNotFound) || errors.Is(cerr, ErrChallengeMismatch) {
			return Rejected{Reason: RejectIncorrectCredentials, Cause: cerr}, nil
		}
		return nil, oops.Code("VERIFY_2FA_FAILED").
			With("operation", "consume challenge").
			With("email", email.String()).
			Wrap(cerr)
	}

	return s.authenticate(email, OpVerify2FA)
}

// Logout revokes token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) (out Outcome, err error) {
	ctx, span := tracer.Start(ctx, "auth.logout")
	defer func() { s.finish(ctx, span, OpLogout, out, err) }()

	if token == "" {
		return Rejected{Reason: RejectMissingToken}, nil
	}

	claims, verr := s.tokens.Validate(ctx, token)
	if verr != nil {
		if errors.Is(verr, ErrInvalidToken) {
			return Rejected{Reason: RejectInvalidToken, Cause: verr}, nil
		}
		return nil, oops.Code("LOGOUT_FAILED").
			With("operation", "validate token").
			Wrap(verr)
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		// Expired between validation and now; nothing left to revoke.
		return LoggedOut{Email: claims.Subject}, nil
	}
	if err := s.banned.Add(ctx, token, ttl); err != nil {
		return nil, oops.Code("LOGOUT_FAILED").
			With("operation", "ban token").
			With("email", claims.Subject.String()).
			Wrap(err)
	}

	return LoggedOut{Email: claims.Subject}, nil
}

// VerifyToken reports whether token is currently trusted.
func (s *Service) VerifyToken(ctx context.Context, token string) (out Outcome, err error) {
	ctx, span := tracer.Start(ctx, "auth.verify_token")
	defer func() { s.finish(ctx, span, OpVerifyToken, out, err) }()

	if token == "" {
		return Rejected{Reason: RejectInvalidToken, Cause: oops.Code("TOKEN_MALFORMED").Wrap(ErrTokenMalformed)}, nil
	}

	claims, verr := s.tokens.Validate(ctx, token)
	if verr != nil {
		if errors.Is(verr, ErrInvalidToken) {
			return Rejected{Reason: RejectInvalidToken, Cause: verr}, nil
		}
		return nil, oops.Code("VERIFY_TOKEN_FAILED").
			With("operation", "validate token").
			Wrap(verr)
	}

	return TokenValid{Email: claims.Subject}, nil
}

func (s *Service) authenticate(email Email, op string) (Outcome, error) {
	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, oops.Code("TOKEN_ISSUE_FAILED").
			With("operation", op).
			With("email", email.String()).
			Wrap(err)
	}
	return Authenticated{Token: token}, nil
}

// finish records the span status, a log line, and a metric for one call.
func (s *Service) finish(ctx context.Context, span trace.Span, op string, out Outcome, err error) {
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		errutil.LogErrorContext(ctx, s.logger, op+" failed", err)
		s.metrics.RecordOutcome(op, "error", "")
		return
	}

	var reason RejectReason
	if rej, ok := out.(Rejected); ok {
		reason = rej.Reason
		span.SetAttributes(attribute.String("auth.reject_reason", string(reason)))
		attrs := []any{"operation", op, "reason", string(reason)}
		if code := errorCode(rej.Cause); code != "" {
			attrs = append(attrs, "code", code)
		}
		s.logger.InfoContext(ctx, "request rejected", attrs...)
	}
	span.SetAttributes(attribute.String("auth.outcome", out.Name()))
	s.metrics.RecordOutcome(op, out.Name(), reason)
}

func parseCredentials(rawEmail, rawPassword string) (Email, Password, error) {
	email, err := ParseEmail(rawEmail)
	if err != nil {
		return Email{}, Password{}, err
	}
	password, err := ParsePassword(rawPassword)
	if err != nil {
		return Email{}, Password{}, err
	}
	return email, password, nil
}
