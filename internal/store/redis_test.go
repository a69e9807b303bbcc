// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/holomush/authcore/internal/store"
	"github.com/holomush/authcore/pkg/errutil"
)

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects and pings", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := store.NewRedisClient(ctx, store.RedisOptions{Addr: mr.Addr(), Timeout: time.Second})
		require.NoError(t, err)
		defer client.Close()

		require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		mr.CheckGet(t, "k", "v")
	})

	t.Run("requires auth when configured", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.RequireAuth("s3cret")

		_, err := store.NewRedisClient(ctx, store.RedisOptions{Addr: mr.Addr()})
		errutil.AssertErrorCode(t, err, "REDIS_CONNECT_FAILED")

		client, err := store.NewRedisClient(ctx, store.RedisOptions{Addr: mr.Addr(), Password: "s3cret"})
		require.NoError(t, err)
		_ = client.Close()
	})
}

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := store.NewPool(context.Background(), "://not a url")
	errutil.AssertErrorCode(t, err, "DB_CONFIG_INVALID")
}
