/*
handlers.go - HTTP API handlers for the budgeting engine

PURPOSE:
  Exposes the budgeting engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Plans:
    GET    /api/plans                    List all plans
    POST   /api/plans                    Create plan
    GET    /api/plans/{id}               Get plan
    PUT    /api/plans/{id}               Replace plan
    DELETE /api/plans/{id}               Delete plan (and its scenarios)
    POST   /api/plans/{id}/duplicate     Duplicate plan

  Plan items (upsert by embedded id, delete by path id):
    PUT    /api/plans/{id}/income
    PUT    /api/plans/{id}/method
    PUT    /api/plans/{id}/categories
    DELETE /api/plans/{id}/categories/{itemId}
    PUT    /api/plans/{id}/debts
    DELETE /api/plans/{id}/debts/{itemId}
    PUT    /api/plans/{id}/goals
    DELETE /api/plans/{id}/goals/{itemId}

  Derived views:
    GET    /api/plans/{id}/summary         Monthly snapshot
    GET    /api/plans/{id}/warnings        Plan health warnings
    GET    /api/plans/{id}/reality-check   Buckets vs. preset targets
    GET    /api/plans/{id}/payoff          Debt payoff projection
    GET    /api/plans/{id}/payoff/compare  Snowball vs. avalanche

  Presets:
    GET/POST /api/presets, PUT/DELETE /api/presets/{id}

  Settings:
    GET/PUT  /api/settings
    POST     /api/settings/passcode          Set passcode
    POST     /api/settings/passcode/verify   Verify passcode
    DELETE   /api/settings/passcode          Disable passcode

  Admin:
    POST   /api/reset                    Wipe and re-seed

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:  Database access
  - Logger: Structured logging (zap)

  All derived views are computed fresh from the stored plan on every
  request; nothing is cached or persisted.

TIME:
  Handlers that depend on "today" (sinking funds, goal warnings) accept
  an optional ?asOf=YYYY-MM-DD query parameter, defaulting to the
  current date. Tests pin it for determinism.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: What-if scenario handlers
  - export.go: Backup export/import
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/s3h4n/moneee/budget"
	"github.com/s3h4n/moneee/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Logger *zap.Logger
}

// NewHandler creates a new handler with the given store and logger.
func NewHandler(store *sqlite.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Logger: logger}
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// ListPlans returns all plans.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Store.ListPlans(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list plans", err)
		return
	}
	if plans == nil {
		plans = []budget.Plan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

// CreatePlan creates a new empty plan.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Plan name is required", nil)
		return
	}
	if req.Currency == "" {
		settings, err := h.Store.GetSettings(r.Context())
		if err != nil {
			h.serverError(w, "Failed to load settings", err)
			return
		}
		req.Currency = settings.Currency
	}

	plan := budget.NewPlan(req.Name, req.Currency, req.PresetID)
	if err := h.Store.SavePlan(r.Context(), plan); err != nil {
		h.serverError(w, "Failed to create plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// GetPlan returns a plan by id.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// UpdatePlan replaces a plan wholesale. The path id wins over any id in
// the body; created-at is preserved from the stored plan.
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var plan budget.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	plan.ID = existing.ID
	plan.Meta.CreatedAt = existing.Meta.CreatedAt
	plan.Touch()

	if err := h.Store.SavePlan(r.Context(), plan); err != nil {
		h.serverError(w, "Failed to update plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// DeletePlan removes a plan and its scenarios. If the deleted plan was
// active, the active plan falls back to the oldest remaining one.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if err := h.Store.DeletePlan(ctx, plan.ID); err != nil {
		h.serverError(w, "Failed to delete plan", err)
		return
	}

	settings, err := h.Store.GetSettings(ctx)
	if err != nil {
		h.serverError(w, "Failed to load settings", err)
		return
	}
	if settings.ActivePlanID == plan.ID {
		settings.ActivePlanID = ""
		if remaining, err := h.Store.ListPlans(ctx); err == nil && len(remaining) > 0 {
			settings.ActivePlanID = remaining[0].ID
		}
		if err := h.Store.SaveSettings(ctx, settings); err != nil {
			h.serverError(w, "Failed to update settings", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": plan.ID})
}

// DuplicatePlan clones a plan under a fresh id and " copy" suffix.
func (h *Handler) DuplicatePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	clone := plan.Clone()
	clone.ID = budget.NewID("plan")
	clone.Name = plan.Name + " copy"
	timestamp := budget.NowISO()
	clone.Meta = budget.PlanMeta{CreatedAt: timestamp, UpdatedAt: timestamp}

	if err := h.Store.SavePlan(r.Context(), clone); err != nil {
		h.serverError(w, "Failed to duplicate plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, clone)
}

// SetIncome replaces a plan's income block.
func (h *Handler) SetIncome(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var income budget.PlanIncome
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	plan.Income = income
	h.savePlan(w, r, plan)
}

// SetMethod changes a plan's budgeting method mode and preset.
func (h *Handler) SetMethod(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var req MethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	switch req.Mode {
	case budget.ModePreset, budget.ModeZero, budget.ModeEnvelope:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown method mode: %s", req.Mode), nil)
		return
	}
	if req.PresetID != "" {
		preset, err := h.Store.GetPreset(r.Context(), req.PresetID)
		if err != nil {
			h.serverError(w, "Failed to look up preset", err)
			return
		}
		if preset == nil {
			writeError(w, http.StatusNotFound, "Preset not found", nil)
			return
		}
	}

	plan.MethodMode = req.Mode
	plan.MethodPresetID = req.PresetID
	h.savePlan(w, r, plan)
}

// =============================================================================
// PLAN ITEM HANDLERS (categories, debts, goals)
// =============================================================================

// UpsertCategory adds or replaces a category by its embedded id. An
// empty id gets one generated.
func (h *Handler) UpsertCategory(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var category budget.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if category.ID == "" {
		category.ID = budget.NewID("cat")
	}

	replaced := false
	for i, c := range plan.Categories {
		if c.ID == category.ID {
			plan.Categories[i] = category
			replaced = true
			break
		}
	}
	if !replaced {
		plan.Categories = append(plan.Categories, category)
	}
	h.savePlan(w, r, plan)
}

// RemoveCategory deletes a category by id. Missing ids are a no-op.
func (h *Handler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemId")

	kept := plan.Categories[:0]
	for _, c := range plan.Categories {
		if c.ID != itemID {
			kept = append(kept, c)
		}
	}
	plan.Categories = kept
	h.savePlan(w, r, plan)
}

// UpsertDebt adds or replaces a debt by its embedded id.
func (h *Handler) UpsertDebt(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var debt budget.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if debt.ID == "" {
		debt.ID = budget.NewID("debt")
	}

	replaced := false
	for i, d := range plan.Debts {
		if d.ID == debt.ID {
			plan.Debts[i] = debt
			replaced = true
			break
		}
	}
	if !replaced {
		plan.Debts = append(plan.Debts, debt)
	}
	h.savePlan(w, r, plan)
}

// RemoveDebt deletes a debt by id.
func (h *Handler) RemoveDebt(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemId")

	kept := plan.Debts[:0]
	for _, d := range plan.Debts {
		if d.ID != itemID {
			kept = append(kept, d)
		}
	}
	plan.Debts = kept
	h.savePlan(w, r, plan)
}

// UpsertGoal adds or replaces a goal by its embedded id.
func (h *Handler) UpsertGoal(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}

	var goal budget.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if goal.ID == "" {
		goal.ID = budget.NewID("goal")
	}

	replaced := false
	for i, g := range plan.Goals {
		if g.ID == goal.ID {
			plan.Goals[i] = goal
			replaced = true
			break
		}
	}
	if !replaced {
		plan.Goals = append(plan.Goals, goal)
	}
	h.savePlan(w, r, plan)
}

// RemoveGoal deletes a goal by id.
func (h *Handler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	itemID := chi.URLParam(r, "itemId")

	kept := plan.Goals[:0]
	for _, g := range plan.Goals {
		if g.ID != itemID {
			kept = append(kept, g)
		}
	}
	plan.Goals = kept
	h.savePlan(w, r, plan)
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// GetSummary returns the plan's monthly snapshot.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, budget.CalculatePlanSummary(*plan, now))
}

// GetWarnings returns the plan's health warnings.
func (h *Handler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, budget.EvaluatePlanWarnings(*plan, now))
}

// GetRealityCheck compares the plan's bucket allocations against its
// method preset's targets.
func (h *Handler) GetRealityCheck(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}
	if plan.MethodPresetID == "" {
		writeError(w, http.StatusBadRequest, "Plan has no method preset", nil)
		return
	}
	preset, err := h.Store.GetPreset(r.Context(), plan.MethodPresetID)
	if err != nil {
		h.serverError(w, "Failed to look up preset", err)
		return
	}
	if preset == nil {
		writeError(w, http.StatusNotFound, "Preset not found", nil)
		return
	}

	income := budget.CalculateIncomeMonthly(*plan)
	actual := budget.Allocations{
		Needs:   budget.SumByBucket(*plan, budget.BucketNeeds, now),
		Wants:   budget.SumByBucket(*plan, budget.BucketWants, now),
		Savings: budget.SumByBucket(*plan, budget.BucketSavings, now),
	}
	writeJSON(w, http.StatusOK, RealityCheckDTO{
		Targets: budget.PercentTargets(income, *preset),
		Actual:  actual,
		Check:   budget.ComputeRealityCheck(income, actual, *preset),
	})
}

// GetPayoff projects debt payoff for the plan's debts.
// Query: budget (defaults to the plan's savings + debt minimums),
// strategy (default snowball), horizon.
func (h *Handler) GetPayoff(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}
	monthly, ok := budgetParam(w, r, plan, now)
	if !ok {
		return
	}

	strategy := budget.Strategy(r.URL.Query().Get("strategy"))
	if strategy == "" {
		strategy = budget.StrategySnowball
	}
	if strategy != budget.StrategySnowball && strategy != budget.StrategyAvalanche {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown strategy: %s", strategy), nil)
		return
	}

	horizon := 0
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid horizon parameter", err)
			return
		}
		horizon = parsed
	}

	summary := budget.ProjectDebtPayoffHorizon(plan.Debts, monthly, strategy, horizon)
	writeJSON(w, http.StatusOK, toPayoffSummaryDTO(summary))
}

// ComparePayoff runs both strategies over the same debts and budget so
// the client can show them side by side.
func (h *Handler) ComparePayoff(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.loadPlan(w, r)
	if !ok {
		return
	}
	now, ok := asOf(w, r)
	if !ok {
		return
	}
	monthly, ok := budgetParam(w, r, plan, now)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, PayoffCompareDTO{
		Snowball:  toPayoffSummaryDTO(budget.Snowball(plan.Debts, monthly)),
		Avalanche: toPayoffSummaryDTO(budget.Avalanche(plan.Debts, monthly)),
	})
}

// =============================================================================
// PRESET HANDLERS
// =============================================================================

// ListPresets returns all method presets.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.Store.ListPresets(r.Context())
	if err != nil {
		h.serverError(w, "Failed to list presets", err)
		return
	}
	if presets == nil {
		presets = []budget.MethodPreset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

// CreatePreset adds a custom method preset.
func (h *Handler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var req PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Preset name is required", nil)
		return
	}
	if req.NeedsPct+req.WantsPct+req.SavingsPct <= 0 {
		writeError(w, http.StatusBadRequest, "Preset fractions must sum to a positive value", nil)
		return
	}

	preset := budget.MakeCustomPreset(req.Name, req.NeedsPct, req.WantsPct, req.SavingsPct)
	if req.Renormalise {
		preset = preset.NormalisePct()
	}
	if err := h.Store.SavePreset(r.Context(), preset); err != nil {
		h.serverError(w, "Failed to create preset", err)
		return
	}
	writeJSON(w, http.StatusCreated, preset)
}

// UpdatePreset replaces a preset's name and fractions, keeping its id.
func (h *Handler) UpdatePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.GetPreset(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to look up preset", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Preset not found", nil)
		return
	}

	var req PresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	preset := budget.MethodPreset{
		ID:         id,
		Name:       req.Name,
		NeedsPct:   req.NeedsPct,
		WantsPct:   req.WantsPct,
		SavingsPct: req.SavingsPct,
	}
	if preset.Name == "" {
		preset.Name = existing.Name
	}
	if req.Renormalise {
		preset = preset.NormalisePct()
	}
	if err := h.Store.SavePreset(r.Context(), preset); err != nil {
		h.serverError(w, "Failed to update preset", err)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

// DeletePreset removes a preset. Plans keep their weak reference.
func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeletePreset(r.Context(), id); err != nil {
		h.serverError(w, "Failed to delete preset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the application settings. The passcode hash never
// serializes.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSettings(r.Context())
	if err != nil {
		h.serverError(w, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings replaces the writable settings fields. Passcode state
// is managed through the dedicated passcode endpoints and survives
// updates here untouched.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Store.GetSettings(r.Context())
	if err != nil {
		h.serverError(w, "Failed to load settings", err)
		return
	}

	var req sqlite.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.EnablePasscode = existing.EnablePasscode
	req.PasscodeHash = existing.PasscodeHash

	if req.ActivePlanID != "" {
		plan, err := h.Store.GetPlan(r.Context(), req.ActivePlanID)
		if err != nil {
			h.serverError(w, "Failed to look up plan", err)
			return
		}
		if plan == nil {
			writeError(w, http.StatusNotFound, "Active plan not found", nil)
			return
		}
	}

	if err := h.Store.SaveSettings(r.Context(), req); err != nil {
		h.serverError(w, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// SetPasscode hashes and stores a new passcode.
func (h *Handler) SetPasscode(w http.ResponseWriter, r *http.Request) {
	var req PasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Passcode) < 4 {
		writeError(w, http.StatusBadRequest, "Passcode must be at least 4 characters", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Passcode), bcrypt.DefaultCost)
	if err != nil {
		h.serverError(w, "Failed to hash passcode", err)
		return
	}

	settings, err := h.Store.GetSettings(r.Context())
	if err != nil {
		h.serverError(w, "Failed to load settings", err)
		return
	}
	settings.EnablePasscode = true
	settings.PasscodeHash = string(hash)
	if err := h.Store.SaveSettings(r.Context(), settings); err != nil {
		h.serverError(w, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// VerifyPasscode checks a submitted passcode against the stored hash.
func (h *Handler) VerifyPasscode(w http.ResponseWriter, r *http.Request) {
	var req PasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	settings, err := h.Store.GetSettings(r.Context())
	if err != nil {
		h.serverError(w, "Failed to load settings", err)
		return
	}
	if !settings.EnablePasscode || settings.PasscodeHash == "" {
		writeError(w, http.StatusBadRequest, "No passcode is set", nil)
		return
	}

	match := bcrypt.CompareHashAndPassword([]byte(settings.PasscodeHash), []byte(req.Passcode)) == nil
	writeJSON(w, http.StatusOK, VerifyPasscodeDTO{Valid: match})
}

// ClearPasscode disables the passcode and discards its hash.
func (h *Handler) ClearPasscode(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSettings(r.Context())
	if err != nil {
		h.serverError(w, "Failed to load settings", err)
		return
	}
	settings.EnablePasscode = false
	settings.PasscodeHash = ""
	if err := h.Store.SaveSettings(r.Context(), settings); err != nil {
		h.serverError(w, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset wipes all data and re-seeds the defaults.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		h.serverError(w, "Failed to reset", err)
		return
	}
	h.Logger.Info("database reset to defaults")
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

// =============================================================================
// HELPERS
// =============================================================================

// loadPlan fetches the plan named by the {id} path parameter, writing
// the error response itself when the plan cannot be served.
func (h *Handler) loadPlan(w http.ResponseWriter, r *http.Request) (*budget.Plan, bool) {
	id := chi.URLParam(r, "id")
	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		h.serverError(w, "Failed to get plan", err)
		return nil, false
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return nil, false
	}
	return plan, true
}

// savePlan touches, persists and echoes a mutated plan.
func (h *Handler) savePlan(w http.ResponseWriter, r *http.Request, plan *budget.Plan) {
	plan.Touch()
	if err := h.Store.SavePlan(r.Context(), *plan); err != nil {
		h.serverError(w, "Failed to save plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) serverError(w http.ResponseWriter, message string, err error) {
	h.Logger.Error(message, zap.Error(err))
	writeError(w, http.StatusInternalServerError, message, err)
}

// asOf parses the optional ?asOf=YYYY-MM-DD parameter, defaulting to
// the current time.
func asOf(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("asOf")
	if raw == "" {
		return time.Now(), true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid asOf date (use YYYY-MM-DD)", err)
		return time.Time{}, false
	}
	return parsed, true
}

// budgetParam parses the ?budget= query parameter. When omitted, the
// debt budget defaults to what the plan already allocates to savings
// plus its debt minimums.
func budgetParam(w http.ResponseWriter, r *http.Request, plan *budget.Plan, now time.Time) (float64, bool) {
	raw := r.URL.Query().Get("budget")
	if raw == "" {
		summary := budget.CalculatePlanSummary(*plan, now)
		return summary.Savings + summary.Debt, true
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid budget parameter", err)
		return 0, false
	}
	return parsed, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
