/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the planning frontend

ROUTE GROUPS:
  /api/shifts/*        Validation, suggestions, persistence
  /api/employees/*     Entities, compliance summary
  /api/pay/*           Shift/week pricing and cotisations

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

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

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.CreateShift)
			r.Post("/validate", h.ValidateShift)
			r.Post("/quick-validate", h.QuickValidateShift)
			r.Post("/suggestions", h.SuggestShift)
			r.Delete("/{id}", h.DeleteShift)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}/contract", h.SetContract)
			r.Get("/{id}/contract", h.GetContract)
			r.Get("/{id}/shifts", h.ListShifts)
			r.Post("/{id}/absences", h.CreateAbsence)
			r.Get("/{id}/compliance", h.GetCompliance)
		})

		// Pay routes
		r.Route("/pay", func(r chi.Router) {
			r.Post("/shift", h.PayShift)
			r.Post("/week", h.PayWeek)
			r.Post("/cotisations", h.PayCotisations)
		})
	})

	return r
}
