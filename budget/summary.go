/*
summary.go - Plan summary calculation

PURPOSE:
  Aggregates a plan's income entries, categories and debt minimums into a
  single monthly snapshot (PlanSummary), and computes the reality-check
  deltas between actual bucket allocations and a method preset's targets.

CALCULATION:
  income   = normalised primary income + sum of normalised extras
  needs    = sum of resolved category amounts in the needs bucket
  wants    = sum of resolved category amounts in the wants bucket
  savings  = sum of resolved category amounts in the savings bucket
  debt     = sum of all debt minimum payments
  leftover = income - (needs + wants + savings + debt)

  A sinking-fund category with no manual monthly amount resolves to the
  auto-computed contribution required to hit its target by its due date.

SEE ALSO:
  - warnings.go: Consumes PlanSummary for plan health checks
  - payoff.go: Typically fed summary.Savings + summary.Debt as the budget
*/
package budget

import "time"

// PlanSummary is the derived monthly snapshot of a plan. It is computed
// fresh on every call and never cached.
type PlanSummary struct {
	Income   float64 `json:"income"`
	Needs    float64 `json:"needs"`
	Wants    float64 `json:"wants"`
	Savings  float64 `json:"savings"`
	Debt     float64 `json:"debt"`
	Leftover float64 `json:"leftover"`
}

// SinkingMonthly returns the monthly contribution required to reach
// `target` by the due date. The month count is inclusive of the current
// month, so a due date this month or in the past yields the full target:
// underfunded sinking goals surface immediately instead of being divided
// by a small or negative month count. An unparseable due date also yields
// the full target.
func SinkingMonthly(target float64, dueDateISO string, now time.Time) float64 {
	months, ok := monthsUntil(dueDateISO, now)
	if !ok || months <= 1 {
		return target
	}
	return target / float64(months)
}

// ResolveCategoryAmount returns the effective monthly amount for a
// category. Sinking funds with a zero (unset) manual amount fall back to
// the auto-computed sinking contribution.
func ResolveCategoryAmount(c Category, now time.Time) float64 {
	if c.Type == CategorySinking && c.AmountMonthly == 0 {
		return SinkingMonthly(c.Target, c.DueDate, now)
	}
	return c.AmountMonthly
}

// CalculateIncomeMonthly normalises all of a plan's income entries to a
// single monthly figure.
func CalculateIncomeMonthly(plan Plan) float64 {
	total := NormaliseToMonthly(plan.Income.Primary.Amount, plan.Income.Primary.Frequency)
	for _, extra := range plan.Income.Extras {
		total += NormaliseToMonthly(extra.Amount, extra.Frequency)
	}
	return total
}

// SumByBucket totals the resolved monthly amounts of all categories in
// one bucket. Order-independent.
func SumByBucket(plan Plan, bucket Bucket, now time.Time) float64 {
	var total float64
	for _, c := range plan.Categories {
		if c.Bucket == bucket {
			total += ResolveCategoryAmount(c, now)
		}
	}
	return total
}

// CalculatePlanSummary computes the monthly snapshot for a plan. Debts
// are aggregated by their minimum payments, independently of the bucket
// system. Leftover may be negative.
func CalculatePlanSummary(plan Plan, now time.Time) PlanSummary {
	income := CalculateIncomeMonthly(plan)
	needs := SumByBucket(plan, BucketNeeds, now)
	wants := SumByBucket(plan, BucketWants, now)
	savings := SumByBucket(plan, BucketSavings, now)

	var debt float64
	for _, d := range plan.Debts {
		debt += d.Minimum
	}

	return PlanSummary{
		Income:   income,
		Needs:    needs,
		Wants:    wants,
		Savings:  savings,
		Debt:     debt,
		Leftover: income - (needs + wants + savings + debt),
	}
}

// =============================================================================
// REALITY CHECK
// =============================================================================

// Targets are the monthly amounts a method preset implies for an income.
type Targets struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// Allocations are the actual monthly amounts assigned to each bucket.
type Allocations struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// RealityCheck holds the deltas between actual allocations and preset
// targets. Positive means overspent relative to the target; the sign
// convention is load-bearing for presentation (positive/zero renders as
// ahead/neutral, negative as behind).
type RealityCheck struct {
	Income       float64 `json:"income"`
	NeedsDelta   float64 `json:"needsDelta"`
	WantsDelta   float64 `json:"wantsDelta"`
	SavingsDelta float64 `json:"savingsDelta"`
}

// PercentTargets converts a preset's fractions into monthly target
// amounts for the given income. Zero income yields zero targets.
func PercentTargets(income float64, preset MethodPreset) Targets {
	return Targets{
		Needs:   income * preset.NeedsPct,
		Wants:   income * preset.WantsPct,
		Savings: income * preset.SavingsPct,
	}
}

// ComputeRealityCheck compares actual bucket allocations against the
// targets implied by a preset.
func ComputeRealityCheck(income float64, alloc Allocations, preset MethodPreset) RealityCheck {
	targets := PercentTargets(income, preset)
	return RealityCheck{
		Income:       income,
		NeedsDelta:   alloc.Needs - targets.Needs,
		WantsDelta:   alloc.Wants - targets.Wants,
		SavingsDelta: alloc.Savings - targets.Savings,
	}
}
