// Package reqctx carries the authenticated user through a request context.
package reqctx

import (
	"context"

	"smart-canteen/internal/domain"
)

type ctxKey struct{}

func WithUser(ctx context.Context, u domain.AuthUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func User(ctx context.Context) (domain.AuthUser, bool) {
	u, ok := ctx.Value(ctxKey{}).(domain.AuthUser)
	return u, ok
}
