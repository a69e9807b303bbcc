// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package redis

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/holomush/authcore/internal/auth"
)

// Optimistic transaction conflicts are retried this many times. A conflict
// means another caller touched the key, so the next read sees the new state.
const (
	maxConflictRetries = 4
	conflictBackoff    = 5 * time.Millisecond
)

// ChallengeStore keeps one challenge per email under two_fa_code:<email>.
// The value is the JSON array ["<attempt id>", "<code>"].
type ChallengeStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

var _ auth.ChallengeStore = (*ChallengeStore)(nil)

// NewChallengeStore creates a store on client with auth.ChallengeTTL expiry.
func NewChallengeStore(client goredis.UniversalClient) *ChallengeStore {
	return &ChallengeStore{client: client, ttl: auth.ChallengeTTL}
}

func challengeKey(email auth.Email) string {
	return ChallengePrefix + email.String()
}

// Issue implements auth.ChallengeStore. SET replaces any existing value and
// resets its expiry.
func (s *ChallengeStore) Issue(ctx context.Context, email auth.Email, attemptID auth.LoginAttemptID, code auth.TwoFACode) error {
	payload, err := json.Marshal([2]string{attemptID.String(), code.String()})
	if err != nil {
		return oops.Code("CHALLENGE_ISSUE_FAILED").With("email", email.String()).Wrap(err)
	}
	if err := s.client.Set(ctx, challengeKey(email), payload, s.ttl).Err(); err != nil {
		return oops.Code("CHALLENGE_ISSUE_FAILED").With("email", email.String()).Wrap(err)
	}
	return nil
}

// CheckAndConsume implements auth.ChallengeStore. The read, compare and
// delete run under WATCH so that two consumers cannot both delete the same
// challenge; the loser's EXEC fails and its retry reads the key as gone.
func (s *ChallengeStore) CheckAndConsume(ctx context.Context, email auth.Email, attemptID auth.LoginAttemptID, code auth.TwoFACode) error {
	key := challengeKey(email)
	var outcome error

	backoff := retry.WithMaxRetries(maxConflictRetries, retry.NewConstant(conflictBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, goredis.Nil) {
				outcome = auth.ChallengeNotFound(email)
				return nil
			}
			if err != nil {
				return err
			}

			storedID, storedCode, err := decodeChallenge(raw)
			if err != nil {
				return err
			}
			codeOK := subtle.ConstantTimeCompare([]byte(storedCode), []byte(code.String())) == 1
			if storedID != attemptID.String() || !codeOK {
				outcome = auth.ChallengeMismatch(email)
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			if err != nil {
				return err
			}
			outcome = nil
			return nil
		}, key)

		if errors.Is(err, goredis.TxFailedErr) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return oops.Code("CHALLENGE_CONSUME_FAILED").
			With("email", email.String()).
			Wrap(err)
	}
	return outcome
}

func decodeChallenge(raw []byte) (attemptID, code string, err error) {
	var pair [2]string
	if err := json.Unmarshal(raw, &pair); err != nil {
		return "", "", oops.Code("CHALLENGE_CORRUPT").Wrap(err)
	}
	return pair[0], pair[1], nil
}
