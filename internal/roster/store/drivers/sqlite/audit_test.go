package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/stretchr/testify/require"
)

func TestAuditListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	actor := "admin-1"
	add := func(entityID, action string, at time.Time) int64 {
		id, err := s.Audit().Create(ctx, domain.AuditLog{
			EntityType: domain.EntityUser,
			EntityID:   entityID,
			Action:     action,
			ActorID:    &actor,
			ActorName:  "admin",
			Changes:    domain.AuditChanges{New: map[string]any{"username": entityID}},
			CreatedAt:  at,
		})
		require.NoError(t, err)
		return id
	}

	add("u1", domain.ActionCreate, t0)
	add("u1", domain.ActionUpdate, t0.Add(time.Second))
	add("u2", domain.ActionCreate, t0.Add(2*time.Second))
	tieA := add("u1", domain.ActionUpdate, t0.Add(3*time.Second))
	tieB := add("u1", domain.ActionUpdate, t0.Add(3*time.Second))

	all, err := s.Audit().List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, tieB, all[0].ID, "same timestamp falls back to id")
	require.Equal(t, tieA, all[1].ID)
	for i := 1; i < len(all); i++ {
		require.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}

	updates, err := s.Audit().List(ctx, domain.AuditFilter{EntityType: domain.EntityUser, EntityID: "u1", Action: domain.ActionUpdate})
	require.NoError(t, err)
	require.Len(t, updates, 3)
	for _, l := range updates {
		require.Equal(t, domain.ActionUpdate, l.Action)
		require.Equal(t, "u1", l.EntityID)
		require.Equal(t, "u1", l.Changes.New["username"])
		require.Nil(t, l.Changes.Old)
		require.Equal(t, "admin-1", *l.ActorID)
	}

	page, err := s.Audit().List(ctx, domain.AuditFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page, 1)

	n, err := s.Audit().Count(ctx, domain.AuditFilter{Action: domain.ActionCreate, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	none, err := s.Audit().List(ctx, domain.AuditFilter{Action: "create"})
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}
