package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc DSN for path (a file or ":memory:") with WAL, a
// busy timeout, foreign keys and sortable time encoding.
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_time_format=sqlite&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path,
	)
}

// NewStore opens the database. The pool is held to one connection so
// writers queue instead of failing with SQLITE_BUSY, and so ":memory:"
// databases are shared by every caller.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return newStoreFromDB(db, dsn)
}

func newStoreFromDB(db *sql.DB, dsn string) (*Store, error) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx runs fn in a transaction. With a single pooled connection, fn
// must not touch s itself or it will wait on its own transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) Versions() store.Versions           { return &versionsRepo{q: s.q} }
func (s *Store) Audit() store.Audit                 { return &auditRepo{q: s.q} }
func (s *Store) RevokedTokens() store.RevokedTokens { return &revokedTokensRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapWriteErr(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", store.ErrAlreadyExists, se.Error())
		}
	}
	return err
}

// mapAffected reports store.ErrNotFound when an update touched no row.
func mapAffected(n int64, err error) error {
	if err != nil {
		return mapWriteErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:             row.ID,
		Username:       row.Username,
		Email:          row.Email,
		Name:           row.Name,
		PasswordHash:   row.PasswordHash,
		IsAdmin:        row.IsAdmin,
		LockoutEnd:     mapNullTimePtr(row.LockoutEnd),
		FailedAttempts: int(row.FailedAttempts),
		AvatarPath:     row.AvatarPath,
		MFASecret:      mapNullStringPtr(row.MfaSecret),
		MFAEnabledAt:   mapNullTimePtr(row.MfaEnabledAt),
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
		LastLoginAt:    mapNullTimePtr(row.LastLoginAt),
	}
}

func mapVersion(row gen.UserVersion) domain.UserVersion {
	return domain.UserVersion{
		ID:            row.ID,
		UserID:        row.UserID,
		Username:      row.Username,
		Email:         row.Email,
		Name:          row.Name,
		IsAdmin:       row.IsAdmin,
		VersionNumber: int(row.VersionNumber),
		CreatedAt:     row.CreatedAt.UTC(),
	}
}

// limitOf maps "no limit" (0) to SQLite's -1.
func limitOf(n int) int64 {
	if n <= 0 {
		return -1
	}
	return int64(n)
}
