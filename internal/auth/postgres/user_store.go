// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

// Pool is the subset of *pgxpool.Pool the store needs.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserStore implements auth.UserStore using PostgreSQL.
type UserStore struct {
	pool   Pool
	hasher auth.PasswordHasher
	now    func() time.Time
}

var _ auth.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore. Passwords are hashed with hasher before
// insert.
func NewUserStore(pool Pool, hasher auth.PasswordHasher) *UserStore {
	return &UserStore{pool: pool, hasher: hasher, now: time.Now}
}

// Get implements auth.UserStore.
func (r *UserStore) Get(ctx context.Context, email auth.Email) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT email, password_hash, requires_2fa, created_at
		FROM users
		WHERE email = $1
	`, email.String())

	var (
		storedEmail string
		user        auth.User
	)
	err := row.Scan(&storedEmail, &user.PasswordHash, &user.Requires2FA, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.UserNotFound(email)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_FAILED").
			With("operation", "select user").
			With("email", email.String()).
			Wrap(err)
	}

	user.Email, err = auth.ParseEmail(storedEmail)
	if err != nil {
		return nil, oops.Code("USER_CORRUPT").
			With("email", email.String()).
			Wrap(err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

// Validate implements auth.UserStore.
func (r *UserStore) Validate(ctx context.Context, email auth.Email, password auth.Password) error {
	user, err := r.Get(ctx, email)
	return auth.CheckPassword(ctx, r.hasher, user, err, password)
}

// Add implements auth.UserStore. The primary key on email decides concurrent
// signups; the loser gets a unique violation.
func (r *UserStore) Add(ctx context.Context, nu auth.NewUser) error {
	hash, err := r.hasher.Hash(ctx, nu.Password)
	if err != nil {
		return oops.Code("USER_ADD_FAILED").
			With("operation", "hash password").
			With("email", nu.Email.String()).
			Wrap(err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (email, password_hash, requires_2fa, created_at)
		VALUES ($1, $2, $3, $4)
	`, nu.Email.String(), hash, nu.Requires2FA, r.now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return auth.UserAlreadyExists(nu.Email)
		}
		return oops.Code("USER_ADD_FAILED").
			With("operation", "insert user").
			With("email", nu.Email.String()).
			Wrap(err)
	}
	return nil
}
