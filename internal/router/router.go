// Package router sets up all HTTP routes and middleware chains for the
// admin API. It organizes routes into a public group and a bearer-token
// protected /api group.
package router

import (
	"github.com/go-chi/chi/v5"

	"shopadmin/internal/auth"
	"shopadmin/internal/handlers"
	"shopadmin/internal/middleware"
)

// API bundles the handler groups the router mounts.
type API struct {
	Content   *handlers.Content
	Public    *handlers.Public
	Products  *handlers.Products
	Orders    *handlers.Orders
	Customers *handlers.Customers
	Reviews   *handlers.Reviews
	Users     *handlers.Users
	Settings  *handlers.Settings
	Dashboard *handlers.Dashboard
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(verifier *auth.Verifier, api API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — no auth.
	r.Get("/health", handlers.Health)

	// Storefront read path — published content only, cached.
	r.Get("/public/content/{slug}", api.Public.GetContent)

	// Admin API — every route requires a valid bearer token.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))

		// Versioned content.
		r.Route("/content", func(r chi.Router) {
			r.Post("/", api.Content.Create)
			r.Get("/", api.Content.List)
			r.Get("/schedules/due", api.Content.DueSchedules)
			r.Get("/{slug}", api.Content.Get)
			r.Put("/{slug}", api.Content.Update)
			r.Get("/{slug}/versions", api.Content.Versions)
			r.Post("/{slug}/publish", api.Content.Publish)
			r.Delete("/{slug}/publish", api.Content.Unpublish)
		})

		// Catalog.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", api.Products.List)
			r.Post("/", api.Products.Create)
			r.Get("/{id}", api.Products.Get)
			r.Put("/{id}", api.Products.Update)
			r.Delete("/{id}", api.Products.Delete)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.Products.ListCategories)
			r.Post("/", api.Products.CreateCategory)
			r.Delete("/{id}", api.Products.DeleteCategory)
		})

		// Orders.
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", api.Orders.List)
			r.Get("/{id}", api.Orders.Get)
			r.Put("/{id}/status", api.Orders.UpdateStatus)
		})

		// Customers (read only).
		r.Get("/customers", api.Customers.List)
		r.Get("/customers/{id}", api.Customers.Get)

		// Review moderation.
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", api.Reviews.List)
			r.Put("/{id}/approval", api.Reviews.SetApproval)
			r.Delete("/{id}", api.Reviews.Delete)
		})

		// Staff accounts — admin only.
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", api.Users.List)
			r.Post("/", api.Users.Create)
			r.Delete("/{id}", api.Users.Delete)
		})

		// Storefront settings.
		r.Get("/settings", api.Settings.List)
		r.Put("/settings/{key}", api.Settings.Set)

		// Dashboard.
		r.Get("/dashboard", api.Dashboard.Get)
	})

	return r
}
