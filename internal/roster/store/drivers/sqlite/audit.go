package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type auditRepo struct {
	q *gen.Queries
}

func (r *auditRepo) Create(ctx context.Context, l domain.AuditLog) (int64, error) {
	changes, err := json.Marshal(l.Changes)
	if err != nil {
		return 0, fmt.Errorf("encode audit changes: %w", err)
	}

	return r.q.CreateAuditLog(ctx, gen.CreateAuditLogParams{
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		ActorID:    mapOptionalString(l.ActorID),
		ActorName:  l.ActorName,
		Changes:    string(changes),
		CreatedAt:  l.CreatedAt.UTC(),
	})
}

func (r *auditRepo) List(ctx context.Context, f domain.AuditFilter) ([]domain.AuditLog, error) {
	rows, err := r.q.ListAuditLogs(ctx, gen.ListAuditLogsParams{
		EntityType: f.EntityType,
		EntityID:   f.EntityID,
		Action:     f.Action,
		Lim:        limitOf(f.Limit),
		Off:        int64(max(f.Offset, 0)),
	})
	if err != nil {
		return nil, err
	}

	logs := make([]domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		l, err := mapAuditLog(row)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *auditRepo) Count(ctx context.Context, f domain.AuditFilter) (int, error) {
	n, err := r.q.CountAuditLogs(ctx, gen.CountAuditLogsParams{
		EntityType: f.EntityType,
		EntityID:   f.EntityID,
		Action:     f.Action,
	})
	return int(n), err
}

func mapAuditLog(row gen.AuditLog) (domain.AuditLog, error) {
	var changes domain.AuditChanges
	if err := json.Unmarshal([]byte(row.Changes), &changes); err != nil {
		return domain.AuditLog{}, fmt.Errorf("decode audit %d changes: %w", row.ID, err)
	}

	return domain.AuditLog{
		ID:         row.ID,
		EntityType: row.EntityType,
		EntityID:   row.EntityID,
		Action:     row.Action,
		ActorID:    mapNullStringPtr(row.ActorID),
		ActorName:  row.ActorName,
		Changes:    changes,
		CreatedAt:  row.CreatedAt.UTC(),
	}, nil
}
