// Package access resolves the acting staff member of a service call.
package access

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// Require returns the authenticated actor when their role is one of roles.
// ADMIN passes every check. With no roles any authenticated actor passes.
func Require(ctx context.Context, roles ...domain.UserRole) (uuid.UUID, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if len(roles) == 0 || IsAdmin(ctx) {
		return actorID, nil
	}
	for _, r := range roles {
		if ctxutil.HasRole(ctx, r.String()) {
			return actorID, nil
		}
	}
	return uuid.Nil, domain.ErrForbidden
}

// IsAdmin reports whether the context carries the ADMIN role.
func IsAdmin(ctx context.Context) bool {
	return ctxutil.HasRole(ctx, domain.UserRoleAdmin.String())
}

// OwnOnly reports whether the caller may only see their own records.
func OwnOnly(ctx context.Context) bool {
	return ctxutil.HasRole(ctx, domain.UserRoleRequester.String())
}
