// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/auth/postgres"
)

func newIntegrationStore(t *testing.T) *postgres.UserStore {
	t.Helper()
	inner, err := auth.NewArgon2idHasher(auth.Argon2Params{
		Memory: 64, Iterations: 1, Threads: 1, SaltLength: 16, KeyLength: 32,
	})
	require.NoError(t, err)
	return postgres.NewUserStore(testPool, auth.NewOffloadHasher(inner, 4))
}

func cleanupUser(t *testing.T, email auth.Email) {
	t.Cleanup(func() {
		_, _ = testPool.Exec(context.Background(), `DELETE FROM users WHERE email = $1`, email.String())
	})
}

func TestUserStore_Integration_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t)
	email := auth.MustParseEmail("lifecycle@example.com")
	cleanupUser(t, email)

	require.NoError(t, store.Add(ctx, auth.NewUser{
		Email:       email,
		Password:    auth.MustParsePassword("password123"),
		Requires2FA: true,
	}))

	user, err := store.Get(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.True(t, user.Requires2FA)
	assert.False(t, user.CreatedAt.IsZero())

	require.NoError(t, store.Validate(ctx, email, auth.MustParsePassword("password123")))
	err = store.Validate(ctx, email, auth.MustParsePassword("wrongpassword"))
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	err = store.Add(ctx, auth.NewUser{Email: email, Password: auth.MustParsePassword("otherpassword")})
	assert.ErrorIs(t, err, auth.ErrAlreadyExists)
}

func TestUserStore_Integration_ConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	store := newIntegrationStore(t)
	email := auth.MustParseEmail("race@example.com")
	cleanupUser(t, email)

	const n = 8
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Add(ctx, auth.NewUser{Email: email, Password: auth.MustParsePassword("password123")})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, auth.ErrAlreadyExists):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(n-1), conflicts.Load())
}
