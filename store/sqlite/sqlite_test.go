package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3h4n/moneee/budget"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedCreatesDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))

	presets, err := store.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "50-30-20", presets[0].ID)

	plans, err := store.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Main plan", plans[0].Name)

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, plans[0].ID, settings.ActivePlanID)
	assert.Equal(t, "LKR", settings.Currency)
	assert.True(t, settings.ShowRealityCheck)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))
	require.NoError(t, store.Seed(ctx))

	plans, err := store.ListPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	presets, err := store.ListPresets(ctx)
	require.NoError(t, err)
	assert.Len(t, presets, 2)
}

func TestPlanRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	plan := budget.NewPlan("Household", "LKR", "50-30-20")
	plan.Categories = append(plan.Categories, budget.Category{
		ID: "cat-rent", Name: "Rent", Type: budget.CategoryFixed,
		Bucket: budget.BucketNeeds, AmountMonthly: 52000,
	})
	require.NoError(t, store.SavePlan(ctx, plan))

	got, err := store.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Household", got.Name)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, 52000.0, got.Categories[0].AmountMonthly)

	// Updating through SavePlan replaces the stored blob.
	plan.Name = "Household v2"
	plan.Touch()
	require.NoError(t, store.SavePlan(ctx, plan))

	got, err = store.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Household v2", got.Name)
}

func TestGetPlanMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetPlan(context.Background(), "plan-nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeletePlanRemovesScenarios(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	plan := budget.NewPlan("Base", "LKR", "50-30-20")
	require.NoError(t, store.SavePlan(ctx, plan))

	scenario := budget.NewScenario(plan, "lower rent")
	require.NoError(t, store.SaveScenario(ctx, scenario))

	require.NoError(t, store.DeletePlan(ctx, plan.ID))

	gotPlan, err := store.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, gotPlan)

	scenarios, err := store.ListScenarios(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}

func TestScenarioRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	plan := budget.NewPlan("Base", "LKR", "50-30-20")
	require.NoError(t, store.SavePlan(ctx, plan))

	scenario := budget.NewScenario(plan, "")
	require.NoError(t, store.SaveScenario(ctx, scenario))

	got, err := store.GetScenario(ctx, scenario.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Base tweak", got.Name)
	assert.Equal(t, plan.ID, got.BasePlanID)
	assert.Equal(t, plan.Income.Primary.Amount, got.Plan.Income.Primary.Amount)

	require.NoError(t, store.DeleteScenario(ctx, scenario.ID))
	got, err = store.GetScenario(ctx, scenario.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPresetCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	preset := budget.MakeCustomPreset("70 20 10", 0.7, 0.2, 0.1)
	require.NoError(t, store.SavePreset(ctx, preset))

	got, err := store.GetPreset(ctx, preset.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.7, got.NeedsPct)

	preset.WantsPct = 0.15
	preset.SavingsPct = 0.15
	require.NoError(t, store.SavePreset(ctx, preset))

	got, err = store.GetPreset(ctx, preset.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.15, got.WantsPct)

	require.NoError(t, store.DeletePreset(ctx, preset.ID))
	got, err = store.GetPreset(ctx, preset.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsDefaultsAndSave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// No row yet: defaults come back.
	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "LKR", settings.Currency)
	assert.Empty(t, settings.ActivePlanID)

	settings.Currency = "USD"
	settings.Theme = "dark"
	settings.EnablePasscode = true
	settings.PasscodeHash = "$2a$10$fakehashforstoragetest"
	require.NoError(t, store.SaveSettings(ctx, settings))

	got, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.EnablePasscode)
	assert.Equal(t, "$2a$10$fakehashforstoragetest", got.PasscodeHash)
}

func TestResetRestoresDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))

	extra := budget.NewPlan("Extra", "LKR", "60-30-10")
	require.NoError(t, store.SavePlan(ctx, extra))

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	settings.Currency = "EUR"
	require.NoError(t, store.SaveSettings(ctx, settings))

	require.NoError(t, store.Reset(ctx))

	plans, err := store.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Main plan", plans[0].Name)

	settings, err = store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "LKR", settings.Currency)
}