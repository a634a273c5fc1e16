package auth

import "context"

type contextKey string

const (
	actorIDKey    contextKey = "actor_id"
	actorEmailKey contextKey = "actor_email"
	actorRoleKey  contextKey = "actor_role"
)

// SetActorContext stores the authenticated caller's identity (called by middleware).
func SetActorContext(ctx context.Context, id int64, email, role string) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, id)
	ctx = context.WithValue(ctx, actorEmailKey, email)
	ctx = context.WithValue(ctx, actorRoleKey, role)
	return ctx
}

func ActorIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorIDKey).(int64)
	return id, ok
}

func ActorEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(actorEmailKey).(string)
	return email
}

func ActorRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(actorRoleKey).(string)
	return role
}
