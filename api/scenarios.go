/*
scenarios.go - What-if scenario handlers

PURPOSE:
  Scenarios are deep copies of a base plan that can be edited without
  touching the original. The compare endpoint computes both summaries
  and their per-field deltas so a client can render "what changes if I
  drop the gym membership" side by side.

LIFECYCLE:
  Created from a base plan, edited independently, never merged back.
  Deleting the base plan cascades to its scenarios (see store).

SEE ALSO:
  - budget/plan.go: NewScenario and Plan.Clone
  - handlers.go: Shared helpers (writeJSON, writeError, asOf)
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/s3h4n/moneee/budget"
)

// ListScenarios returns scenarios, optionally filtered by ?planId=.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.Store.ListScenarios(r.Context(), r.URL.Query().Get("planId"))
	if err != nil {
		h.serverError(w, "Failed to list scenarios", err)
		return
	}
	if scenarios == nil {
		scenarios = []budget.Scenario{}
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// CreateScenario clones a base plan into a new scenario.
func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var req CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.BasePlanID == "" {
		writeError(w, http.StatusBadRequest, "basePlanId is required", nil)
		return
	}

	base, err := h.Store.GetPlan(r.Context(), req.BasePlanID)
	if err != nil {
		h.serverError(w, "Failed to get plan", err)
		return
	}
	if base == nil {
		writeError(w, http.StatusNotFound, "Base plan not found", nil)
		return
	}

	scenario := budget.NewScenario(*base, req.Name)
	if err := h.Store.SaveScenario(r.Context(), scenario); err != nil {
		h.serverError(w, "Failed to create scenario", err)
		return
	}
	writeJSON(w, http.StatusCreated, scenario)
}

// GetScenario returns a scenario by id.
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, scenario)
}

// UpdateScenario replaces a scenario's name and embedded plan. The id,
// base plan and created-at are preserved.
func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadScenario(w, r)
	if !ok {
		return
	}

	var req budget.Scenario
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	existing.Name = req.Name
	existing.Plan = req.Plan
	existing.UpdatedAt = budget.NowISO()

	if err := h.Store.SaveScenario(r.Context(), *existing); err != nil {
		h.serverError(w, "Failed to update scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// DeleteScenario removes a scenario.
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteScenario(r.Context(), scenario.ID); err != nil {
		h.serverError(w, "Failed to delete scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": scenario.ID})
}

// GetScenarioSummary returns the monthly snapshot of a scenario's plan.
func (h *Handler) GetScenarioSummary(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, budget.CalculatePlanSummary(scenario.Plan, now))
}

// CompareScenario computes base and scenario summaries plus deltas
// (scenario minus base).
func (h *Handler) CompareScenario(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.loadScenario(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}

	base, err := h.Store.GetPlan(r.Context(), scenario.BasePlanID)
	if err != nil {
		h.serverError(w, "Failed to get plan", err)
		return
	}
	if base == nil {
		writeError(w, http.StatusNotFound, "Base plan not found", nil)
		return
	}

	baseSummary := budget.CalculatePlanSummary(*base, now)
	scenarioSummary := budget.CalculatePlanSummary(scenario.Plan, now)

	writeJSON(w, http.StatusOK, ScenarioCompareDTO{
		BasePlanID: base.ID,
		ScenarioID: scenario.ID,
		Base:       baseSummary,
		Scenario:   scenarioSummary,
		Delta: budget.PlanSummary{
			Income:   scenarioSummary.Income - baseSummary.Income,
			Needs:    scenarioSummary.Needs - baseSummary.Needs,
			Wants:    scenarioSummary.Wants - baseSummary.Wants,
			Savings:  scenarioSummary.Savings - baseSummary.Savings,
			Debt:     scenarioSummary.Debt - baseSummary.Debt,
			Leftover: scenarioSummary.Leftover - baseSummary.Leftover,
		},
	})
}

func (h *Handler) loadScenario(w http.ResponseWriter, r *http.Request) (*budget.Scenario, bool) {
	id := chi.URLParam(r, "id")
	scenario, err := h.Store.GetScenario(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to get scenario", err)
		return nil, false
	}
	if scenario == nil {
		writeError(w, http.StatusNotFound, "Scenario not found", nil)
		return nil, false
	}
	return scenario, true
}
