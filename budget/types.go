/*
Package budget provides the core plan calculation engine.

PURPOSE:
  This package contains the pure functions that turn a plan's raw inputs
  (income entries, spending categories, debts, savings goals, a chosen
  method preset) into derived numbers: monthly summaries, plan health
  warnings, reality-check deltas against a preset's targets, and
  month-by-month debt payoff projections under competing strategies.

KEY CONCEPTS IN THIS FILE (types.go):
  - IncomeEntry: An amount plus a pay frequency (monthly, bi-weekly, weekly)
  - Category: A spending line with a bucket (needs/wants/savings) and type
  - Debt: A balance with an APR and a minimum monthly payment
  - Goal: A savings target with an optional due date
  - MethodPreset: Target bucket percentages (e.g. 50/30/20)
  - Plan: The aggregate the user edits; Scenario: a cloned what-if plan

DESIGN PRINCIPLES:
  1. Purity: every function reads its arguments and returns new values.
     Caller-owned plans, categories and debts are never mutated.
  2. No errors for well-formed input: degenerate numeric conditions are
     signaled through data (zero values, the Unbounded sentinel), never
     through error returns or panics.
  3. Injectable time: anything date-sensitive takes a `now time.Time` so
     tests are deterministic.

USAGE:
  summary := budget.CalculatePlanSummary(plan, time.Now())
  warnings := budget.EvaluatePlanWarnings(plan, time.Now())
  payoff := budget.Snowball(plan.Debts, summary.Savings+summary.Debt)

SEE ALSO:
  - summary.go: Income normalization, bucket sums, plan summary
  - warnings.go: Plan health warnings
  - payoff.go: Debt payoff projection (snowball / avalanche)
  - presets.go: Built-in method presets and preset lookup
*/
package budget

// =============================================================================
// INCOME
// =============================================================================

// Frequency is how often an income entry pays out.
type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyWeekly   Frequency = "weekly"
)

// IncomeEntry is a single income source.
type IncomeEntry struct {
	Amount    float64   `json:"amount"`
	Frequency Frequency `json:"frequency"`
}

// PlanIncome groups the primary income with any extra sources.
type PlanIncome struct {
	Primary IncomeEntry   `json:"primary"`
	Extras  []IncomeEntry `json:"extras,omitempty"`
}

// =============================================================================
// CATEGORIES
// =============================================================================

type CategoryType string

const (
	CategoryFixed    CategoryType = "fixed"
	CategoryVariable CategoryType = "variable"
	CategorySinking  CategoryType = "sinking"
	CategoryEnvelope CategoryType = "envelope"
)

// Bucket is the top-level spending classification for a category.
type Bucket string

const (
	BucketNeeds   Bucket = "needs"
	BucketWants   Bucket = "wants"
	BucketSavings Bucket = "savings"
)

// Category is a spending line in a plan. Sinking-fund categories
// additionally carry a Target and DueDate; when their AmountMonthly is
// zero the monthly contribution is auto-computed from those.
type Category struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Type          CategoryType `json:"type"`
	Bucket        Bucket       `json:"bucket"`
	AmountMonthly float64      `json:"amountMonthly"`
	CapMonthly    float64      `json:"capMonthly,omitempty"`

	// Sinking fund fields (Type == CategorySinking only).
	Target  float64 `json:"target,omitempty"`
	DueDate string  `json:"dueDate,omitempty"` // YYYY-MM-DD
}

// =============================================================================
// DEBTS AND GOALS
// =============================================================================

// Debt is an outstanding balance with an APR (annual percentage, e.g.
// 19.9) and a minimum monthly payment. The projector works on its own
// copies; caller-supplied debts are never mutated.
type Debt struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	APR     float64 `json:"apr"`
	Minimum float64 `json:"minimum"`
}

// Goal is a savings target, optionally dated.
type Goal struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Target  float64 `json:"target"`
	Current float64 `json:"current"`
	DueDate string  `json:"dueDate,omitempty"` // YYYY-MM-DD
}

// =============================================================================
// METHOD PRESETS
// =============================================================================

// MethodPreset holds target bucket fractions, nominally summing to 1.0.
// The engine does not enforce the sum; callers normalise when editing.
type MethodPreset struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	NeedsPct   float64 `json:"needsPct"`
	WantsPct   float64 `json:"wantsPct"`
	SavingsPct float64 `json:"savingsPct"`
}

// MethodMode describes which budgeting discipline a plan follows. The
// engine only computes numbers; mode-specific validation (e.g. zero-based
// requiring leftover == 0) is a presentation concern.
type MethodMode string

const (
	ModePreset   MethodMode = "preset"
	ModeZero     MethodMode = "zero"
	ModeEnvelope MethodMode = "envelope"
)

// =============================================================================
// PLAN AND SCENARIO
// =============================================================================

// PlanMeta carries creation/update timestamps (RFC 3339).
type PlanMeta struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Plan aggregates everything the user edits. MethodPresetID is a weak
// reference resolved by id lookup; a deleted preset simply means no
// active preset.
type Plan struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Currency       string     `json:"currency"`
	Income         PlanIncome `json:"income"`
	Categories     []Category `json:"categories"`
	Debts          []Debt     `json:"debts"`
	Goals          []Goal     `json:"goals"`
	MethodPresetID string     `json:"methodPresetId,omitempty"`
	MethodMode     MethodMode `json:"methodMode"`
	Meta           PlanMeta   `json:"meta"`
}

// Scenario is a what-if copy of a plan, edited independently of its base.
type Scenario struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BasePlanID string `json:"basePlanId"`
	Plan       Plan   `json:"plan"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}
