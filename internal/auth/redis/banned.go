// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

// BannedTokenStore keeps each revoked token as its own expiring key.
type BannedTokenStore struct {
	client goredis.UniversalClient
}

var _ auth.BannedTokenStore = (*BannedTokenStore)(nil)

// NewBannedTokenStore creates a store on client.
func NewBannedTokenStore(client goredis.UniversalClient) *BannedTokenStore {
	return &BannedTokenStore{client: client}
}

func bannedKey(token string) string {
	return BannedTokenPrefix + token
}

// Add implements auth.BannedTokenStore. A non-positive ttl stores nothing.
func (s *BannedTokenStore) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, bannedKey(token), true, ttl).Err(); err != nil {
		return oops.Code("BANNED_TOKEN_ADD_FAILED").
			With("ttl", ttl.String()).
			Wrap(err)
	}
	return nil
}

// Contains implements auth.BannedTokenStore.
func (s *BannedTokenStore) Contains(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, bannedKey(token)).Result()
	if err != nil {
		return false, oops.Code("BANNED_TOKEN_LOOKUP_FAILED").Wrap(err)
	}
	return n > 0, nil
}
