// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package memory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/auth"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// cheapHasher keeps argon2 costs minimal so tests stay fast.
func cheapHasher(t *testing.T) auth.PasswordHasher {
	t.Helper()
	inner, err := auth.NewArgon2idHasher(auth.Argon2Params{
		Memory:     64,
		Iterations: 1,
		Threads:    1,
		SaltLength: 16,
		KeyLength:  32,
	})
	require.NoError(t, err)
	return auth.NewOffloadHasher(inner, 4)
}
