package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// HistoryService reads version snapshots and audit entries and restores
// users to earlier snapshots.
type HistoryService struct {
	Store      store.Store
	Versioning *VersioningService
	Now        func() time.Time
}

type AuditQuery struct {
	PageIndex int
	PageSize  int
	UserID    string
	Action    string
}

type AuditResult struct {
	Logs       []domain.AuditLog
	TotalCount int
}

// RestoreResult is the restored user and the version it was restored from.
type RestoreResult struct {
	User                domain.User
	RestoredFromVersion int
	Version             domain.UserVersion // the snapshot written by the restore
}

// GetUserVersions returns the snapshots of userID, newest first.
func (s *HistoryService) GetUserVersions(ctx context.Context, userID string) ([]domain.UserVersion, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	vs, err := s.Store.Versions().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if vs == nil {
		vs = []domain.UserVersion{}
	}
	return vs, nil
}

// RestoreUserVersion copies the profile of snapshot versionID back onto
// userID. The restore is itself versioned and audited. A snapshot of a
// different user is reported as not found.
func (s *HistoryService) RestoreUserVersion(ctx context.Context, userID string, versionID int64) (RestoreResult, error) {
	l := slogx.FromContext(ctx)
	now := nowUTC(s.Now)

	var res RestoreResult
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		v, err := tx.Versions().GetByID(ctx, versionID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && v.UserID != userID) {
			return ErrVersionNotFound
		}
		if err != nil {
			return fmt.Errorf("get version: %w", err)
		}

		old := u.Profile()
		p := v.Profile()
		if old.IsAdmin && !p.IsAdmin {
			if err := ensureOtherAdmin(ctx, tx); err != nil {
				return err
			}
		}
		if err := checkUnique(ctx, tx, p, userID); err != nil {
			return err
		}
		if err := tx.Users().Update(ctx, userID, p, now); err != nil {
			return uniqueConflict(err)
		}
		u.Apply(p)
		u.UpdatedAt = now

		nv, err := s.Versioning.CreateUserVersion(ctx, tx, u)
		if err != nil {
			return err
		}
		if err := s.Versioning.CreateAuditLog(ctx, tx, domain.EntityUser, userID, domain.ActionRestore, profileChanges(old), profileChanges(p)); err != nil {
			return err
		}

		res = RestoreResult{User: u, RestoredFromVersion: v.VersionNumber, Version: nv}
		return nil
	})
	if err != nil {
		return RestoreResult{}, err
	}
	committed(domain.ActionRestore)

	l.Info("user restored",
		slog.String("target_id", userID),
		slog.Int("from_version", res.RestoredFromVersion),
		slog.Int("new_version", res.Version.VersionNumber),
	)
	return res, nil
}

// GetAuditLogs pages through audit entries, newest first. UserID narrows to
// entries about that user; Action must match exactly.
func (s *HistoryService) GetAuditLogs(ctx context.Context, q AuditQuery) (AuditResult, error) {
	limit, offset := pageBounds(q.PageIndex, q.PageSize)
	f := domain.AuditFilter{
		Action: q.Action,
		Limit:  limit,
		Offset: offset,
	}
	if q.UserID != "" {
		f.EntityType = domain.EntityUser
		f.EntityID = q.UserID
	}

	total, err := s.Store.Audit().Count(ctx, f)
	if err != nil {
		return AuditResult{}, fmt.Errorf("count audit logs: %w", err)
	}
	logs, err := s.Store.Audit().List(ctx, f)
	if err != nil {
		return AuditResult{}, fmt.Errorf("list audit logs: %w", err)
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	return AuditResult{Logs: logs, TotalCount: total}, nil
}
