// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/holomush/authcore/internal/auth"
)

// BannedTokenStore is an expiring set of revoked tokens.
type BannedTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time // token -> expiry
	now    func() time.Time
}

var _ auth.BannedTokenStore = (*BannedTokenStore)(nil)

// NewBannedTokenStore creates an empty store.
func NewBannedTokenStore(opts ...Option) *BannedTokenStore {
	o := buildOptions(opts)
	return &BannedTokenStore{
		tokens: make(map[string]time.Time),
		now:    o.now,
	}
}

// Add implements auth.BannedTokenStore. A non-positive ttl stores nothing
// since the token has already expired. Expired entries are pruned here.
func (s *BannedTokenStore) Add(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for t, exp := range s.tokens {
		if !now.Before(exp) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = now.Add(ttl)
	return nil
}

// Contains implements auth.BannedTokenStore.
func (s *BannedTokenStore) Contains(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	exp, ok := s.tokens[token]
	s.mu.RUnlock()
	return ok && s.now().Before(exp), nil
}
