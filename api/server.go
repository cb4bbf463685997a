/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the reporting dashboard

ROUTE GROUPS:
  /api/summaries/*   Monthly summaries and year-to-date
  /api/shifts        Classified shift dataset
  /api/rejected      Rejected-row log
  /api/employees/*   Per-employee violation views
  /api/runs          Batch submission and audit trail

SECURITY NOTE:
  No authentication middleware. The service is meant to sit on an
  internal network behind the HR reverse proxy.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/breakcheck/serve.go: Server startup
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
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		// Summary routes
		r.Route("/summaries", func(r chi.Router) {
			r.Get("/", h.ListSummaries)
			r.Get("/{month}", h.GetSummary)
		})
		r.Get("/ytd", h.GetYearToDate)

		// Dataset routes
		r.Get("/shifts", h.ListShifts)
		r.Get("/rejected", h.ListRejected)

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/violations", h.ListEmployeeViolations)
			r.Get("/ytd", h.ListEmployeeYearToDate)
		})

		// Run routes
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", h.ListRuns)
			r.Post("/", h.SubmitRun)
		})
	})

	return r
}
