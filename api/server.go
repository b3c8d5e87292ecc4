/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for browser dashboards

ROUTE GROUPS:
  /api/validate             Validator gate
  /api/reactive/*           Reactive pipeline
  /api/proactive/*          Proactive pipeline
  /api/demo/*               Seeded demonstration data
  /api/workspace/*          In-memory dataset registry

SECURITY NOTE:
  No authentication middleware. The server is meant to sit behind the
  dashboard's own gateway.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/validate", h.Validate)

		r.Route("/reactive", func(r chi.Router) {
			r.Post("/process", h.ProcessReactive)
		})

		r.Route("/proactive", func(r chi.Router) {
			r.Post("/process", h.ProcessProactive)
			r.Get("/catalog", h.GetCatalog)
		})

		r.Route("/demo", func(r chi.Router) {
			r.Get("/reactive", h.DemoReactive)
			r.Get("/proactive", h.DemoProactive)
		})

		r.Route("/workspace", func(r chi.Router) {
			r.Route("/datasets", func(r chi.Router) {
				r.Get("/", h.ListDatasets)
				r.Post("/", h.CreateDataset)
				r.Get("/{id}", h.GetDataset)
				r.Put("/{id}", h.ReplaceDataset)
				r.Delete("/{id}", h.DeleteDataset)
				r.Post("/{id}/process", h.ProcessDataset)
				r.Post("/{id}/months", h.AddDatasetMonth)
				r.Put("/{id}/months/{month}", h.UpdateDatasetMonth)
			})
		})
	})

	return r
}
