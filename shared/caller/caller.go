// Package caller carries the authenticated identity through a request context.
package caller

import (
	"context"
	"medimate/shared/constant"
	"medimate/shared/failure"
	"medimate/shared/role"
	"net/http"
)

var ErrAnonymous = failure.New(http.StatusUnauthorized, "authentication required")

type Caller struct {
	UserID string
	Email  string
	Role   role.Role
}

func (c Caller) Is(r role.Role) bool {
	return c.Role == r
}

// WithCaller stores c under the same keys the auth middleware uses.
func WithCaller(ctx context.Context, c Caller) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, c.Email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, c.Role)
}

// FromContext returns the caller stored by the auth middleware. ok is false for anonymous requests.
func FromContext(ctx context.Context) (c Caller, ok bool) {
	c.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	c.Email, _ = ctx.Value(constant.ContextKeyUserEmail).(string)
	c.Role, _ = ctx.Value(constant.ContextKeyUserRole).(role.Role)

	return c, c.UserID != "" && c.Role.Valid()
}

// Require is FromContext for routes that cannot serve anonymous requests.
func Require(ctx context.Context) (Caller, error) {
	c, ok := FromContext(ctx)
	if !ok {
		return c, ErrAnonymous
	}

	return c, nil
}

// Actor names who performs a write, for the created_by and modified_by columns.
func Actor(ctx context.Context) string {
	if c, ok := FromContext(ctx); ok {
		return c.UserID
	}

	return constant.ContextGuest
}
