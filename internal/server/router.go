package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"smart-canteen/internal/auth"
	"smart-canteen/internal/cart"
	"smart-canteen/internal/catalog"
	"smart-canteen/internal/dashboard"
	"smart-canteen/internal/domain"
	"smart-canteen/internal/employees"
	"smart-canteen/internal/orders"
	"smart-canteen/internal/server/respond"
)

type Handlers struct {
	Auth      *auth.Handler
	Catalog   *catalog.Handler
	Orders    *orders.Handler
	Cart      *cart.Handler
	Employees *employees.Handler
	Dashboard *dashboard.Handler
	Verifier  TokenVerifier
}

// NewRouter wires the full HTTP surface under /api. Reading the menu is
// public; everything else needs a session, and mutations are role-gated.
func NewRouter(log zerolog.Logger, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Get("/menu-items", h.Catalog.List)
		r.Get("/menu-items/{id}", h.Catalog.Show)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(h.Verifier))

			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)

			r.Get("/orders", h.Orders.List)
			r.Post("/orders", h.Orders.Create)
			r.Get("/orders/{id}", h.Orders.Show)

			r.Get("/cart", h.Cart.Show)
			r.Put("/cart", h.Cart.Replace)
			r.Post("/cart/items", h.Cart.Adjust)
			r.Delete("/cart", h.Cart.Clear)

			r.Group(func(r chi.Router) {
				r.Use(RequireRoles(domain.RoleStaff, domain.RoleAdmin))
				r.Put("/orders/{id}/status", h.Orders.UpdateStatus)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRoles(domain.RoleAdmin))

				r.Post("/menu-items", h.Catalog.Create)
				r.Put("/menu-items/{id}", h.Catalog.Update)
				r.Delete("/menu-items/{id}", h.Catalog.Delete)

				r.Get("/employees", h.Employees.List)
				r.Get("/employees/{id}", h.Employees.Show)
				r.Put("/employees/{id}", h.Employees.Update)

				r.Get("/dashboard/stats", h.Dashboard.Stats)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.Message(w, http.StatusNotFound, "resource not found")
	})

	return r
}
