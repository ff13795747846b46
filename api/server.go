/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/plans/*      Plans, their items and derived views
  /api/presets/*    Method presets
  /api/scenarios/*  What-if scenarios
  /api/settings/*   Settings and passcode
  /api/export       Backup export (JSON + per-plan CSV)
  /api/import       Backup restore
  /api/reset        Wipe and re-seed (dev only)

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
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Plan routes
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.Post("/", h.CreatePlan)
			r.Post("/import", h.ImportPlan)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetPlan)
				r.Put("/", h.UpdatePlan)
				r.Delete("/", h.DeletePlan)
				r.Post("/duplicate", h.DuplicatePlan)

				r.Put("/income", h.SetIncome)
				r.Put("/method", h.SetMethod)
				r.Put("/categories", h.UpsertCategory)
				r.Delete("/categories/{itemId}", h.RemoveCategory)
				r.Put("/debts", h.UpsertDebt)
				r.Delete("/debts/{itemId}", h.RemoveDebt)
				r.Put("/goals", h.UpsertGoal)
				r.Delete("/goals/{itemId}", h.RemoveGoal)

				r.Get("/summary", h.GetSummary)
				r.Get("/warnings", h.GetWarnings)
				r.Get("/reality-check", h.GetRealityCheck)
				r.Get("/payoff", h.GetPayoff)
				r.Get("/payoff/compare", h.ComparePayoff)
				r.Get("/export.csv", h.ExportPlanCSV)
			})
		})

		// Preset routes
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", h.ListPresets)
			r.Post("/", h.CreatePreset)
			r.Put("/{id}", h.UpdatePreset)
			r.Delete("/{id}", h.DeletePreset)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/", h.CreateScenario)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetScenario)
				r.Put("/", h.UpdateScenario)
				r.Delete("/", h.DeleteScenario)
				r.Get("/summary", h.GetScenarioSummary)
				r.Get("/compare", h.CompareScenario)
			})
		})

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
			r.Post("/passcode", h.SetPasscode)
			r.Post("/passcode/verify", h.VerifyPasscode)
			r.Delete("/passcode", h.ClearPasscode)
		})

		// Backup routes
		r.Get("/export", h.Export)
		r.Post("/import", h.Import)

		// Dev/admin
		r.Post("/reset", h.Reset)
	})

	return r
}
