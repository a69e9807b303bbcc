// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package memory

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/holomush/authcore/internal/auth"
)

type challenge struct {
	attemptID auth.LoginAttemptID
	code      auth.TwoFACode
	expiresAt time.Time
}

// ChallengeStore keeps one challenge per email. A single mutex makes
// CheckAndConsume exclusive, so a challenge is consumed at most once.
type ChallengeStore struct {
	mu      sync.Mutex
	entries map[auth.Email]challenge
	ttl     time.Duration
	now     func() time.Time
}

var _ auth.ChallengeStore = (*ChallengeStore)(nil)

// NewChallengeStore creates an empty store whose challenges live for auth.ChallengeTTL.
func NewChallengeStore(opts ...Option) *ChallengeStore {
	o := buildOptions(opts)
	return &ChallengeStore{
		entries: make(map[auth.Email]challenge),
		ttl:     auth.ChallengeTTL,
		now:     o.now,
	}
}

// Issue implements auth.ChallengeStore.
func (s *ChallengeStore) Issue(_ context.Context, email auth.Email, attemptID auth.LoginAttemptID, code auth.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = challenge{
		attemptID: attemptID,
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// CheckAndConsume implements auth.ChallengeStore.
func (s *ChallengeStore) CheckAndConsume(_ context.Context, email auth.Email, attemptID auth.LoginAttemptID, code auth.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.entries[email]
	if !ok {
		return auth.ChallengeNotFound(email)
	}
	if !s.now().Before(c.expiresAt) {
		delete(s.entries, email)
		return auth.ChallengeNotFound(email)
	}

	codeOK := subtle.ConstantTimeCompare([]byte(c.code.String()), []byte(code.String())) == 1
	if c.attemptID != attemptID || !codeOK {
		return auth.ChallengeMismatch(email)
	}

	delete(s.entries, email)
	return nil
}
