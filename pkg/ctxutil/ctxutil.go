// Package ctxutil carries the caller identity and request correlation id
// through a request's context.
package ctxutil

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

type (
	staffKey     struct{}
	roleKey      struct{}
	requestIDKey struct{}
)

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, staffKey{}, id)
}

// UserIDFromCtx returns the authenticated staff id. uuid.Nil counts as absent.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, _ := ctx.Value(staffKey{}).(uuid.UUID)
	return id, id != uuid.Nil
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromCtx returns the caller's role, or "" for anonymous callers.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}

// HasRole reports whether the caller holds one of roles.
func HasRole(ctx context.Context, roles ...string) bool {
	role := RoleFromCtx(ctx)
	return role != "" && slices.Contains(roles, role)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
