package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"smart-canteen/internal/domain"
	"smart-canteen/internal/server/reqctx"
	"smart-canteen/internal/server/respond"
)

// TokenVerifier resolves a bearer token to the user it belongs to.
// Implemented by the auth service.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (domain.AuthUser, error)
}

// RequestLogger attaches a request-scoped zerolog logger (with request_id)
// and logs one line per completed request.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := log.With().
				Str("request_id", middleware.GetReqID(r.Context())).
				Logger()
			r = r.WithContext(l.WithContext(r.Context()))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			l.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Message(w, http.StatusUnauthorized, "authorization header is missing")
				return
			}
			fields := strings.Fields(header)
			if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
				respond.Message(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			user, err := verifier.VerifyToken(r.Context(), fields[1])
			if err != nil {
				respond.Err(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(reqctx.WithUser(r.Context(), user)))
		})
	}
}

// RequireRoles guards a route group; must run after Authenticate.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := reqctx.User(r.Context())
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "unauthenticated")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respond.Message(w, http.StatusForbidden, "this action is not permitted for your role")
		})
	}
}
