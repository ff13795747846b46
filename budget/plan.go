package budget

import (
	"fmt"
	"time"
)

// =============================================================================
// PLAN LIFECYCLE
// =============================================================================

// NewID generates a prefixed identifier, e.g. "plan-1756e9...".
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%x", prefix, time.Now().UnixNano())
}

// NowISO returns the current UTC time in RFC 3339, the timestamp format
// used throughout plan metadata.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewPlan creates an empty plan referencing the given preset.
func NewPlan(name, currency string, presetID string) Plan {
	timestamp := NowISO()
	return Plan{
		ID:       NewID("plan"),
		Name:     name,
		Currency: currency,
		Income: PlanIncome{
			Primary: IncomeEntry{Amount: 0, Frequency: FrequencyMonthly},
		},
		Categories:     []Category{},
		Debts:          []Debt{},
		Goals:          []Goal{},
		MethodPresetID: presetID,
		MethodMode:     ModePreset,
		Meta:           PlanMeta{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
}

// Clone returns a deep copy of the plan. The copy shares nothing with
// the original, so scenario edits never leak back into the base plan.
func (p Plan) Clone() Plan {
	clone := p
	clone.Income.Extras = append([]IncomeEntry(nil), p.Income.Extras...)
	clone.Categories = append([]Category(nil), p.Categories...)
	clone.Debts = append([]Debt(nil), p.Debts...)
	clone.Goals = append([]Goal(nil), p.Goals...)
	return clone
}

// Touch stamps the plan's updated-at time.
func (p *Plan) Touch() {
	p.Meta.UpdatedAt = NowISO()
}

// NewScenario clones a base plan into an independent what-if scenario.
func NewScenario(base Plan, name string) Scenario {
	if name == "" {
		name = base.Name + " tweak"
	}
	timestamp := NowISO()
	return Scenario{
		ID:         NewID("scenario"),
		Name:       name,
		BasePlanID: base.ID,
		Plan:       base.Clone(),
		CreatedAt:  timestamp,
		UpdatedAt:  timestamp,
	}
}
