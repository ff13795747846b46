package budget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3h4n/moneee/budget"
)

func TestDefaultMethodPresets(t *testing.T) {
	presets := budget.DefaultMethodPresets()
	require.Len(t, presets, 2)

	for _, p := range presets {
		assert.InDelta(t, 1.0, p.NeedsPct+p.WantsPct+p.SavingsPct, 1e-9, p.ID)
	}

	// Fresh slice each call; editing one must not leak into the next.
	presets[0].NeedsPct = 0.9
	assert.Equal(t, 0.5, budget.DefaultMethodPresets()[0].NeedsPct)
}

func TestMakeCustomPresetSlugifiesName(t *testing.T) {
	preset := budget.MakeCustomPreset("My  Aggressive   Split", 0.4, 0.2, 0.4)
	assert.Equal(t, "my-aggressive-split", preset.ID)
	assert.Equal(t, "My  Aggressive   Split", preset.Name)
}

func TestNormalisePct(t *testing.T) {
	preset := budget.MethodPreset{ID: "x", NeedsPct: 2, WantsPct: 1, SavingsPct: 1}.NormalisePct()
	assert.Equal(t, 0.5, preset.NeedsPct)
	assert.Equal(t, 0.25, preset.WantsPct)
	assert.Equal(t, 0.25, preset.SavingsPct)

	// All-zero fractions stay untouched instead of dividing by zero.
	zero := budget.MethodPreset{ID: "zero"}.NormalisePct()
	assert.Equal(t, 0.0, zero.NeedsPct)
}

func TestFindPreset(t *testing.T) {
	presets := budget.DefaultMethodPresets()

	got, ok := budget.FindPreset(presets, "60-30-10")
	require.True(t, ok)
	assert.Equal(t, 0.6, got.NeedsPct)

	// A dangling reference means "no active preset", not an error.
	_, ok = budget.FindPreset(presets, "deleted-preset")
	assert.False(t, ok)

	_, ok = budget.FindPreset(presets, "")
	assert.False(t, ok)
}
