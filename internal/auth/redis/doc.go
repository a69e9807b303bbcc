// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package redis provides durable BannedTokenStore and ChallengeStore
// implementations on Redis. Every entry is written with an expiry so the
// keyspace prunes itself.
package redis

// Key prefixes.
const (
	BannedTokenPrefix = "banned_token:"
	ChallengePrefix   = "two_fa_code:"
)
