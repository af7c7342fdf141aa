package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"smart-canteen/internal/domain"
	"smart-canteen/internal/server/reqctx"
)

type fakeVerifier struct {
	users map[string]domain.AuthUser
}

func (f *fakeVerifier) VerifyToken(_ context.Context, token string) (domain.AuthUser, error) {
	user, ok := f.users[token]
	if !ok {
		return domain.AuthUser{}, fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	return user, nil
}

func okHandler(t *testing.T, want *domain.AuthUser) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want != nil {
			user, ok := reqctx.User(r.Context())
			require.True(t, ok)
			require.Equal(t, *want, user)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	staff := domain.AuthUser{ID: 2, Name: "Kitchen Staff", Role: domain.RoleStaff}
	verifier := &fakeVerifier{users: map[string]domain.AuthUser{"good-token": staff}}
	handler := Authenticate(verifier)(okHandler(t, &staff))

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"valid token", "Bearer good-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "good-token", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"unknown token", "Bearer bad-token", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			require.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	handler := RequireRoles(domain.RoleStaff, domain.RoleAdmin)(okHandler(t, nil))

	cases := []struct {
		role domain.Role
		code int
	}{
		{domain.RoleStaff, http.StatusOK},
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleCustomer, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/api/orders/1/status", nil)
			r = r.WithContext(reqctx.WithUser(r.Context(), domain.AuthUser{ID: 1, Role: tc.role}))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			require.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRequireRolesWithoutUser(t *testing.T) {
	handler := RequireRoles(domain.RoleAdmin)(okHandler(t, nil))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
