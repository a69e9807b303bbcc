// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

// UserStore keeps users in a map guarded by a RWMutex.
type UserStore struct {
	mu     sync.RWMutex
	users  map[auth.Email]auth.User
	hasher auth.PasswordHasher
	now    func() time.Time
}

var _ auth.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty store that hashes passwords with hasher.
func NewUserStore(hasher auth.PasswordHasher, opts ...Option) *UserStore {
	o := buildOptions(opts)
	return &UserStore{
		users:  make(map[auth.Email]auth.User),
		hasher: hasher,
		now:    o.now,
	}
}

// Get implements auth.UserStore.
func (s *UserStore) Get(_ context.Context, email auth.Email) (*auth.User, error) {
	s.mu.RLock()
	u, ok := s.users[email]
	s.mu.RUnlock()
	if !ok {
		return nil, auth.UserNotFound(email)
	}
	return &u, nil
}

// Validate implements auth.UserStore.
func (s *UserStore) Validate(ctx context.Context, email auth.Email, password auth.Password) error {
	user, err := s.Get(ctx, email)
	return auth.CheckPassword(ctx, s.hasher, user, err, password)
}

// Add implements auth.UserStore. Hashing happens before the lock is taken;
// the existence check and insert happen under it.
func (s *UserStore) Add(ctx context.Context, nu auth.NewUser) error {
	hash, err := s.hasher.Hash(ctx, nu.Password)
	if err != nil {
		return oops.Code("USER_ADD_FAILED").
			With("operation", "hash password").
			With("email", nu.Email.String()).
			Wrap(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[nu.Email]; exists {
		return auth.UserAlreadyExists(nu.Email)
	}
	s.users[nu.Email] = auth.User{
		Email:        nu.Email,
		PasswordHash: hash,
		Requires2FA:  nu.Requires2FA,
		CreatedAt:    s.now(),
	}
	return nil
}

// Len returns the number of stored users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
