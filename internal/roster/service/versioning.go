package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/metrics"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// VersioningService appends version snapshots and audit entries. Both
// calls take the caller's transaction so a failure rolls back the
// mutation that triggered them.
type VersioningService struct {
	Now func() time.Time
}

func (s *VersioningService) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateUserVersion snapshots u's profile as it is after the mutation.
func (s *VersioningService) CreateUserVersion(ctx context.Context, tx store.Tx, u domain.User) (domain.UserVersion, error) {
	v, err := tx.Versions().Create(ctx, u.ID, u.Profile(), s.now())
	if err != nil {
		return domain.UserVersion{}, fmt.Errorf("create user version: %w", err)
	}
	slogx.FromContext(ctx).Debug("user version created",
		slog.String("target_id", u.ID),
		slog.Int("version", v.VersionNumber),
	)
	return v, nil
}

// CreateAuditLog records an action on an entity. The actor comes from ctx,
// falling back to the system actor.
func (s *VersioningService) CreateAuditLog(
	ctx context.Context,
	tx store.Tx,
	entityType, entityID, action string,
	old, new map[string]any,
) error {
	entry := domain.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorName:  domain.SystemActor,
		Changes:    domain.AuditChanges{Old: old, New: new},
		CreatedAt:  s.now(),
	}
	if a, ok := ActorFromContext(ctx); ok {
		entry.ActorID = &a.ID
		entry.ActorName = a.Name
	}

	if _, err := tx.Audit().Create(ctx, entry); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// record runs the version and audit steps for a user mutation.
func (s *VersioningService) record(ctx context.Context, tx store.Tx, u domain.User, action string, old, new map[string]any) error {
	if _, err := s.CreateUserVersion(ctx, tx, u); err != nil {
		return err
	}
	return s.CreateAuditLog(ctx, tx, domain.EntityUser, u.ID, action, old, new)
}

// committed reports a mutation to metrics once its transaction is durable.
func committed(action string) {
	metrics.ObserveMutation(action, action != domain.ActionDelete)
}

// profileChanges is the audit representation of a profile.
func profileChanges(p domain.Profile) map[string]any {
	return map[string]any{
		"username": p.Username,
		"email":    p.Email,
		"name":     p.Name,
		"isAdmin":  p.IsAdmin,
	}
}

func statusChanges(u domain.User, now time.Time) map[string]any {
	var end any
	if u.LockoutEnd != nil {
		end = u.LockoutEnd.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"isActive":   u.IsActive(now),
		"lockoutEnd": end,
	}
}
