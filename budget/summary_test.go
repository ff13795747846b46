package budget_test

import (
	"testing"
	"time"

	"github.com/s3h4n/moneee/budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// jan15 is a fixed "now" so calendar month arithmetic is deterministic.
var jan15 = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func fixedCategory(id string, bucket budget.Bucket, amount float64) budget.Category {
	return budget.Category{
		ID:            id,
		Name:          id,
		Type:          budget.CategoryFixed,
		Bucket:        bucket,
		AmountMonthly: amount,
	}
}

func basePlan() budget.Plan {
	return budget.Plan{
		ID:       "plan-test",
		Name:     "Test plan",
		Currency: "USD",
		Income: budget.PlanIncome{
			Primary: budget.IncomeEntry{Amount: 3000, Frequency: budget.FrequencyMonthly},
		},
		MethodMode: budget.ModePreset,
	}
}

// =============================================================================
// TIME NORMALIZATION
// =============================================================================

func TestNormaliseToMonthly_PeriodsPerYearIdentity(t *testing.T) {
	// For every frequency, monthly * 12 must equal amount * periods/year
	// exactly. Amounts chosen so the division by 12 is representable.
	cases := []struct {
		amount float64
		freq   budget.Frequency
	}{
		{1500, budget.FrequencyMonthly},
		{1500, budget.FrequencyBiWeekly},
		{900, budget.FrequencyWeekly},
		{0, budget.FrequencyBiWeekly},
	}

	for _, tc := range cases {
		monthly := budget.NormaliseToMonthly(tc.amount, tc.freq)
		assert.Equal(t, tc.amount*budget.PeriodsPerYear(tc.freq), monthly*12,
			"identity broken for %v at %v", tc.amount, tc.freq)
	}
}

func TestNormaliseToMonthly_KnownValues(t *testing.T) {
	assert.Equal(t, 1500.0, budget.NormaliseToMonthly(1500, budget.FrequencyMonthly))
	assert.Equal(t, 3250.0, budget.NormaliseToMonthly(1500, budget.FrequencyBiWeekly))
	assert.Equal(t, 3900.0, budget.NormaliseToMonthly(900, budget.FrequencyWeekly))
	// Negative amounts pass through; validation is a caller concern.
	assert.Equal(t, -100.0, budget.NormaliseToMonthly(-100, budget.FrequencyMonthly))
}

// =============================================================================
// SINKING FUNDS
// =============================================================================

func TestSinkingMonthly_ElevenMonthsOut(t *testing.T) {
	// GIVEN: A 1200 target due 11 calendar months from now
	// THEN: 12 inclusive months -> 100 per month
	got := budget.SinkingMonthly(1200, "2025-12-01", jan15)
	assert.Equal(t, 100.0, got)
}

func TestSinkingMonthly_DueThisMonth_FullFunding(t *testing.T) {
	got := budget.SinkingMonthly(600, "2025-01-31", jan15)
	assert.Equal(t, 600.0, got)
}

func TestSinkingMonthly_PastDue_FullFunding(t *testing.T) {
	// A due date in the past must surface the whole target now rather
	// than dividing by a small or negative month count.
	got := budget.SinkingMonthly(600, "2024-06-01", jan15)
	assert.Equal(t, 600.0, got)
}

func TestSinkingMonthly_UnparseableDate_FullFunding(t *testing.T) {
	got := budget.SinkingMonthly(600, "not-a-date", jan15)
	assert.Equal(t, 600.0, got)
}

func TestResolveCategoryAmount(t *testing.T) {
	sinkingAuto := budget.Category{
		ID:     "cat-trip",
		Type:   budget.CategorySinking,
		Bucket: budget.BucketSavings,
		Target: 1200, DueDate: "2025-12-01",
	}
	sinkingManual := sinkingAuto
	sinkingManual.AmountMonthly = 250

	assert.Equal(t, 100.0, budget.ResolveCategoryAmount(sinkingAuto, jan15),
		"sinking fund with no manual amount should auto-compute")
	assert.Equal(t, 250.0, budget.ResolveCategoryAmount(sinkingManual, jan15),
		"manual amount overrides the auto contribution")
	assert.Equal(t, 80.0, budget.ResolveCategoryAmount(fixedCategory("cat-gym", budget.BucketWants, 80), jan15))
}

// =============================================================================
// PLAN SUMMARY
// =============================================================================

func TestCalculatePlanSummary_Aggregation(t *testing.T) {
	plan := basePlan()
	plan.Income.Extras = []budget.IncomeEntry{{Amount: 300, Frequency: budget.FrequencyBiWeekly}}
	plan.Categories = []budget.Category{
		fixedCategory("cat-rent", budget.BucketNeeds, 1200),
		fixedCategory("cat-food", budget.BucketNeeds, 400),
		fixedCategory("cat-fun", budget.BucketWants, 300),
		fixedCategory("cat-save", budget.BucketSavings, 500),
	}
	plan.Debts = []budget.Debt{
		{ID: "debt-card", Name: "Card", Balance: 2000, APR: 19.9, Minimum: 60},
		{ID: "debt-loan", Name: "Loan", Balance: 5000, APR: 8, Minimum: 140},
	}

	summary := budget.CalculatePlanSummary(plan, jan15)

	require.Equal(t, 3650.0, summary.Income, "3000 + 300*26/12")
	assert.Equal(t, 1600.0, summary.Needs)
	assert.Equal(t, 300.0, summary.Wants)
	assert.Equal(t, 500.0, summary.Savings)
	assert.Equal(t, 200.0, summary.Debt)
	assert.Equal(t, 1050.0, summary.Leftover)
}

func TestCalculatePlanSummary_CategoryOrderInvariant(t *testing.T) {
	plan := basePlan()
	plan.Categories = []budget.Category{
		fixedCategory("a", budget.BucketNeeds, 100),
		fixedCategory("b", budget.BucketWants, 200),
		fixedCategory("c", budget.BucketSavings, 300),
		fixedCategory("d", budget.BucketNeeds, 400),
	}

	reversed := basePlan()
	for i := len(plan.Categories) - 1; i >= 0; i-- {
		reversed.Categories = append(reversed.Categories, plan.Categories[i])
	}

	assert.Equal(t,
		budget.CalculatePlanSummary(plan, jan15),
		budget.CalculatePlanSummary(reversed, jan15))
}

func TestCalculatePlanSummary_MissingExtrasAndNegativeLeftover(t *testing.T) {
	plan := basePlan()
	plan.Income.Primary.Amount = 100
	plan.Categories = []budget.Category{fixedCategory("cat-rent", budget.BucketNeeds, 900)}

	summary := budget.CalculatePlanSummary(plan, jan15)
	assert.Equal(t, 100.0, summary.Income)
	assert.Equal(t, -800.0, summary.Leftover, "leftover may go negative")
}

func TestCalculatePlanSummary_DoesNotMutatePlan(t *testing.T) {
	plan := basePlan()
	plan.Debts = []budget.Debt{{ID: "d1", Balance: 1000, APR: 10, Minimum: 25}}
	before := plan.Debts[0]

	budget.CalculatePlanSummary(plan, jan15)

	assert.Equal(t, before, plan.Debts[0])
}

// =============================================================================
// REALITY CHECK
// =============================================================================

func TestComputeRealityCheck_OnTarget(t *testing.T) {
	preset := budget.MethodPreset{ID: "50-30-20", NeedsPct: 0.5, WantsPct: 0.3, SavingsPct: 0.2}
	check := budget.ComputeRealityCheck(1000, budget.Allocations{Needs: 500, Wants: 300, Savings: 200}, preset)

	assert.Equal(t, 1000.0, check.Income)
	assert.Zero(t, check.NeedsDelta)
	assert.Zero(t, check.WantsDelta)
	assert.Zero(t, check.SavingsDelta)
}

func TestComputeRealityCheck_SignConvention(t *testing.T) {
	// Positive = overspent relative to target, negative = behind.
	preset := budget.MethodPreset{NeedsPct: 0.5, WantsPct: 0.3, SavingsPct: 0.2}
	check := budget.ComputeRealityCheck(1000, budget.Allocations{Needs: 600, Wants: 300, Savings: 100}, preset)

	assert.Equal(t, 100.0, check.NeedsDelta)
	assert.Equal(t, 0.0, check.WantsDelta)
	assert.Equal(t, -100.0, check.SavingsDelta)
}

func TestComputeRealityCheck_ZeroIncome(t *testing.T) {
	// Zero income: targets collapse to zero and deltas equal the actual
	// allocations. No NaN leakage.
	preset := budget.MethodPreset{NeedsPct: 0.5, WantsPct: 0.3, SavingsPct: 0.2}
	check := budget.ComputeRealityCheck(0, budget.Allocations{Needs: 250, Wants: 50, Savings: 25}, preset)

	assert.Equal(t, 250.0, check.NeedsDelta)
	assert.Equal(t, 50.0, check.WantsDelta)
	assert.Equal(t, 25.0, check.SavingsDelta)
}
