// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"context"
	"runtime"
	"time"

	"github.com/samber/oops"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher hashes and verifies passwords for the credential stores.
type PasswordHasher interface {
	// Hash returns a self-describing one-way hash of password.
	Hash(ctx context.Context, password Password) (string, error)

	// Verify returns nil if password matches hash and an error wrapping
	// ErrPasswordMismatch if it does not.
	Verify(ctx context.Context, password Password, hash string) error
}

// BlockingHasher is a synchronous, CPU-bound hasher such as Argon2idHasher.
type BlockingHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// HashObserver receives the wall time of each hash or verify call.
type HashObserver interface {
	ObserveHash(op string, d time.Duration)
}

// OffloadHasher runs a BlockingHasher on a bounded set of worker goroutines so
// that bursts of logins cannot occupy every scheduler thread. Callers wait for
// a slot or for their context to end, whichever comes first.
type OffloadHasher struct {
	inner    BlockingHasher
	slots    *semaphore.Weighted
	observer HashObserver
}

var _ PasswordHasher = (*OffloadHasher)(nil)

// OffloadOption configures an OffloadHasher.
type OffloadOption func(*OffloadHasher)

// WithHashObserver reports hash and verify latency to o.
func WithHashObserver(o HashObserver) OffloadOption {
	return func(h *OffloadHasher) {
		h.observer = o
	}
}

// NewOffloadHasher bounds inner to workers concurrent calls. A non-positive
// workers value uses GOMAXPROCS.
func NewOffloadHasher(inner BlockingHasher, workers int, opts ...OffloadOption) *OffloadHasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	h := &OffloadHasher{
		inner: inner,
		slots: semaphore.NewWeighted(int64(workers)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash implements PasswordHasher.
func (h *OffloadHasher) Hash(ctx context.Context, password Password) (string, error) {
	type result struct {
		hash string
		err  error
	}
	res, err := offload(ctx, h, "hash", func() result {
		hash, err := h.inner.Hash(password.Plaintext())
		return result{hash: hash, err: err}
	})
	if err != nil {
		return "", err
	}
	if res.err != nil {
		return "", oops.Code("HASH_FAILED").Wrap(res.err)
	}
	return res.hash, nil
}

// Verify implements PasswordHasher.
func (h *OffloadHasher) Verify(ctx context.Context, password Password, hash string) error {
	type result struct {
		ok  bool
		err error
	}
	res, err := offload(ctx, h, "verify", func() result {
		ok, err := h.inner.Verify(password.Plaintext(), hash)
		return result{ok: ok, err: err}
	})
	if err != nil {
		return err
	}
	if res.err != nil {
		return oops.Code("VERIFY_FAILED").Wrap(res.err)
	}
	if !res.ok {
		return oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrPasswordMismatch)
	}
	return nil
}

// offload runs fn on its own goroutine once a slot is free. If ctx ends first
// the caller returns immediately; fn still runs to completion and releases
// its slot.
func offload[T any](ctx context.Context, h *OffloadHasher, op string, fn func() T) (T, error) {
	var zero T
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return zero, oops.Code("HASHER_UNAVAILABLE").With("op", op).Wrap(err)
	}

	done := make(chan T, 1)
	go func() {
		defer h.slots.Release(1)
		start := time.Now()
		v := fn()
		if h.observer != nil {
			h.observer.ObserveHash(op, time.Since(start))
		}
		done <- v
	}()

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return zero, oops.Code("HASHER_UNAVAILABLE").With("op", op).Wrap(ctx.Err())
	}
}
