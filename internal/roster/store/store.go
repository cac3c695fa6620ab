package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Repositories hang off it so a
// transaction-scoped Store offers exactly the same surface.
type Store interface {
	Users() Users
	Versions() Versions
	Audit() Audit
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or
	// Rollback the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only the tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// Create inserts u. Duplicate username or email returns ErrAlreadyExists.
	Create(ctx context.Context, u domain.User) error

	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail and GetByUsername match case-insensitively.
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// List returns users ordered by creation, oldest first.
	List(ctx context.Context, f domain.UserFilter) ([]domain.User, error)

	// Count ignores the filter's Limit and Offset.
	Count(ctx context.Context, f domain.UserFilter) (int, error)

	// CountAdmins counts admins regardless of status.
	CountAdmins(ctx context.Context) (int, error)

	// Update writes the profile fields and updated_at.
	Update(ctx context.Context, id string, p domain.Profile, updatedAt time.Time) error

	UpdatePassword(ctx context.Context, id, hash string, updatedAt time.Time) error
	SetLockoutEnd(ctx context.Context, id string, end *time.Time, updatedAt time.Time) error
	SetAvatarPath(ctx context.Context, id, path string, updatedAt time.Time) error

	// SetMFA stores the TOTP secret and enabled time; nil clears them.
	SetMFA(ctx context.Context, id string, secret *string, enabledAt *time.Time, updatedAt time.Time) error

	// RecordLoginSuccess resets the failure counter and sets last_login_at.
	RecordLoginSuccess(ctx context.Context, id string, at time.Time) error

	// RecordLoginFailure bumps the failure counter and returns the new value.
	RecordLoginFailure(ctx context.Context, id string) (int, error)

	// Lock sets a temporary lockout and clears the failure counter.
	Lock(ctx context.Context, id string, until time.Time) error

	// Delete removes the user; versions cascade, audit rows stay.
	Delete(ctx context.Context, id string) error
}

type Versions interface {
	// Create appends a snapshot of p numbered max(existing)+1 for userID,
	// computed atomically in the insert.
	Create(ctx context.Context, userID string, p domain.Profile, at time.Time) (domain.UserVersion, error)

	GetByID(ctx context.Context, id int64) (domain.UserVersion, error)

	// ListByUser returns snapshots newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.UserVersion, error)
}

type Audit interface {
	// Create appends an entry and returns its id.
	Create(ctx context.Context, l domain.AuditLog) (int64, error)

	// List returns entries newest first (created_at, then id).
	List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLog, error)

	// Count ignores the filter's Limit and Offset.
	Count(ctx context.Context, f domain.AuditFilter) (int, error)
}

type RevokedTokens interface {
	// Revoke records jti. Revoking twice is not an error.
	Revoke(ctx context.Context, t domain.RevokedToken) error

	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpired removes entries whose token expired before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
