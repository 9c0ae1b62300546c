/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the admin frontend

ROUTE GROUPS:
  /api/bisyaroh/*   Generation and record access
  /api/history/*    Snapshot workflow
  /api/settings/*   Rate and deduction configuration
  /api/staff        Staff catalog
  /api/activities   Activity catalog
  /api/meetings     Meeting catalog
  /api/demo/*       Demo dataset

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
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Compensation routes
		r.Route("/bisyaroh", func(r chi.Router) {
			r.Post("/generate", h.GenerateRecords)
			r.Get("/records", h.ListRecords)
			r.Delete("/records", h.DeleteRecords)
			r.Get("/records/{id}", h.GetRecord)
		})

		// History routes
		r.Route("/history", func(r chi.Router) {
			r.Post("/", h.CreateSnapshot)
			r.Get("/", h.ListSnapshots)
			r.Get("/{id}", h.GetSnapshot)
			r.Post("/{id}/lock", h.ToggleSnapshotLock)
			r.Delete("/{id}", h.DeleteSnapshot)
		})

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.ListSettings)
			r.Post("/", h.AddSetting)
			r.Put("/{key}", h.UpdateSetting)
			r.Delete("/{id}", h.DeleteSetting)
		})

		// Catalog routes
		r.Get("/staff", h.ListStaff)
		r.Get("/activities", h.ListActivities)
		r.Get("/meetings", h.ListMeetings)

		// Demo routes
		r.Post("/demo/load", h.LoadDemoData)
	})

	return r
}
