// Package api assembles the HTTP surface of the service.
package api

import (
	"admin-service/internal/api/handlers"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Products *handlers.ProductHandler
	Orders   *handlers.OrderHandler
	Auth     *handlers.AuthHandler
	Menu     *handlers.MenuHandler
}

func NewRouter(h Handlers, policy *handlers.Policy) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	admin := policy.RequireRole(handlers.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)

			r.Group(func(r chi.Router) {
				r.Use(policy.Authenticated)
				r.Post("/logout", h.Auth.Logout)
				r.Post("/gettime", h.Auth.TokenTTL)
				r.Get("/update", h.Auth.RefreshToken)

				r.With(admin).Get("/getall", h.Auth.GetAll)
				r.With(admin).Patch("/update", h.Auth.UpdateUser)
				r.With(admin).Delete("/delete/{id}", h.Auth.DeleteUser)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(policy.Authenticated)
			r.Get("/getall", h.Products.GetAll)
			r.Get("/get/{id}", h.Products.GetByID)
			r.With(admin).Post("/create", h.Products.Create)
			r.With(admin).Patch("/update/{id}", h.Products.Update)
			r.With(admin).Delete("/delete/{id}", h.Products.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(policy.Authenticated)
			r.Get("/getall", h.Orders.GetAll)
			r.Get("/get/{id}", h.Orders.GetByID)
			r.Post("/create", h.Orders.Create)
			r.Patch("/update/{id}", h.Orders.Update)
			r.Delete("/delete/{id}", h.Orders.Cancel)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Use(policy.Authenticated)
			r.Get("/getall", h.Menu.GetAll)
			r.Get("/get/{id}", h.Menu.GetByID)
			r.Post("/byrole", h.Menu.ByRole)
			r.With(admin).Post("/create", h.Menu.Create)
			r.With(admin).Patch("/update/{id}", h.Menu.Update)
			r.With(admin).Delete("/delete/{id}", h.Menu.Delete)
		})
	})

	return r
}
