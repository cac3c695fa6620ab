package service

import (
	"context"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
)

// Actor is the authenticated user behind a change.
type Actor struct {
	ID   string
	Name string
}

type actorKey struct{}

// WithActor attaches the acting user to ctx. Audit entries written under
// ctx name this actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the actor set by WithActor. Without one it
// returns the system actor and false.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || a.ID == "" {
		return Actor{Name: domain.SystemActor}, false
	}
	return a, true
}
