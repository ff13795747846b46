/*
export.go - Backup export and import

PURPOSE:
  Lets a user take their data with them. Two formats:
  - JSON: the full state (plans, presets, scenarios, settings), round-
    trippable through /api/import. Ids and timestamps are preserved so
    an export/import cycle is lossless.
  - CSV: a single plan flattened into sections (categories, debts,
    goals) for spreadsheets. One-way; there is no CSV import.

CSV LAYOUT:
  Section,Name,Type,Bucket,Monthly        categories (resolved amounts)
  Section,Name,Balance,APR,Minimum        debts
  Section,Name,Target,Current,Due         goals

IMPORT SEMANTICS:
  Import is additive-by-id: rows with known ids are replaced, new ids
  are inserted. Settings are only applied when the payload carries a
  non-empty currency, so partial backups don't blank them.

SEE ALSO:
  - dto.go: ExportDTO
  - handlers.go: Shared helpers
*/
package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/s3h4n/moneee/budget"
)

// exportVersion tags the backup format so future readers can migrate.
const exportVersion = 1

// Export writes the full application state as a JSON backup.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plans, err := h.Store.ListPlans(ctx)
	if err != nil {
		h.serverError(w, "Failed to list plans", err)
		return
	}
	presets, err := h.Store.ListPresets(ctx)
	if err != nil {
		h.serverError(w, "Failed to list presets", err)
		return
	}
	scenarios, err := h.Store.ListScenarios(ctx, "")
	if err != nil {
		h.serverError(w, "Failed to list scenarios", err)
		return
	}
	settings, err := h.Store.GetSettings(ctx)
	if err != nil {
		h.serverError(w, "Failed to load settings", err)
		return
	}

	if plans == nil {
		plans = []budget.Plan{}
	}
	if presets == nil {
		presets = []budget.MethodPreset{}
	}
	if scenarios == nil {
		scenarios = []budget.Scenario{}
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=moneee-backup-%s.json", time.Now().Format("2006-01-02")))
	writeJSON(w, http.StatusOK, ExportDTO{
		Version:    exportVersion,
		ExportedAt: budget.NowISO(),
		Plans:      plans,
		Presets:    presets,
		Scenarios:  scenarios,
		Settings:   settings,
	})
}

// ExportPlanCSV flattens one plan to CSV for spreadsheets.
func (h *Handler) ExportPlanCSV(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.csv", plan.ID))

	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"Section", "Name", "Type", "Bucket", "Monthly"})
	for _, c := range plan.Categories {
		cw.Write([]string{
			"Category", c.Name, string(c.Type), string(c.Bucket),
			formatAmount(budget.ResolveCategoryAmount(c, now)),
		})
	}

	cw.Write([]string{"Section", "Name", "Balance", "APR", "Minimum"})
	for _, d := range plan.Debts {
		cw.Write([]string{
			"Debt", d.Name,
			formatAmount(d.Balance), formatAmount(d.APR), formatAmount(d.Minimum),
		})
	}

	cw.Write([]string{"Section", "Name", "Target", "Current", "Due"})
	for _, g := range plan.Goals {
		cw.Write([]string{
			"Goal", g.Name,
			formatAmount(g.Target), formatAmount(g.Current), g.DueDate,
		})
	}
}

// ImportPlan restores a single plan from its JSON document, keeping its
// id and created-at so re-imports replace rather than duplicate.
func (h *Handler) ImportPlan(w http.ResponseWriter, r *http.Request) {
	var plan budget.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan payload", err)
		return
	}
	if plan.ID == "" || plan.Name == "" {
		writeError(w, http.StatusBadRequest, "Plan id and name are required", nil)
		return
	}
	if plan.Meta.CreatedAt == "" {
		plan.Meta.CreatedAt = budget.NowISO()
	}
	plan.Meta.UpdatedAt = budget.NowISO()

	if err := h.Store.SavePlan(r.Context(), plan); err != nil {
		h.serverError(w, "Failed to import plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// Import restores a JSON backup produced by Export.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var backup ExportDTO
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid backup payload", err)
		return
	}
	if backup.Version > exportVersion {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unsupported backup version: %d", backup.Version), nil)
		return
	}

	ctx := r.Context()
	for _, preset := range backup.Presets {
		if err := h.Store.SavePreset(ctx, preset); err != nil {
			h.serverError(w, "Failed to import preset", err)
			return
		}
	}
	for _, plan := range backup.Plans {
		if plan.ID == "" {
			writeError(w, http.StatusBadRequest, "Backup contains a plan without an id", nil)
			return
		}
		if err := h.Store.SavePlan(ctx, plan); err != nil {
			h.serverError(w, "Failed to import plan", err)
			return
		}
	}
	for _, scenario := range backup.Scenarios {
		if err := h.Store.SaveScenario(ctx, scenario); err != nil {
			h.serverError(w, "Failed to import scenario", err)
			return
		}
	}
	if backup.Settings.Currency != "" {
		existing, err := h.Store.GetSettings(ctx)
		if err != nil {
			h.serverError(w, "Failed to load settings", err)
			return
		}
		// The hash is excluded from export; keep whatever is local.
		backup.Settings.PasscodeHash = existing.PasscodeHash
		backup.Settings.EnablePasscode = existing.EnablePasscode
		if err := h.Store.SaveSettings(ctx, backup.Settings); err != nil {
			h.serverError(w, "Failed to import settings", err)
			return
		}
	}

	h.Logger.Info("backup imported",
		zap.Int("plans", len(backup.Plans)),
		zap.Int("presets", len(backup.Presets)),
		zap.Int("scenarios", len(backup.Scenarios)))
	writeJSON(w, http.StatusOK, map[string]any{
		"plans":     len(backup.Plans),
		"presets":   len(backup.Presets),
		"scenarios": len(backup.Scenarios),
	})
}

// formatAmount renders a float without exponent notation or trailing
// float residue.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
