package budget

import "strings"

// =============================================================================
// METHOD PRESETS
// =============================================================================

// DefaultMethodPresets returns the built-in presets. A fresh slice each
// call; callers may append or edit freely.
func DefaultMethodPresets() []MethodPreset {
	return []MethodPreset{
		{ID: "50-30-20", Name: "50 / 30 / 20", NeedsPct: 0.5, WantsPct: 0.3, SavingsPct: 0.2},
		{ID: "60-30-10", Name: "60 / 30 / 10", NeedsPct: 0.6, WantsPct: 0.3, SavingsPct: 0.1},
	}
}

// MakeCustomPreset builds a preset with an id slugified from its name.
func MakeCustomPreset(name string, needsPct, wantsPct, savingsPct float64) MethodPreset {
	return MethodPreset{
		ID:         strings.Join(strings.Fields(strings.ToLower(name)), "-"),
		Name:       name,
		NeedsPct:   needsPct,
		WantsPct:   wantsPct,
		SavingsPct: savingsPct,
	}
}

// NormalisePct scales the preset's fractions so they sum to 1.0. A
// preset whose fractions sum to zero is returned unchanged.
func (p MethodPreset) NormalisePct() MethodPreset {
	sum := p.NeedsPct + p.WantsPct + p.SavingsPct
	if sum == 0 {
		return p
	}
	p.NeedsPct /= sum
	p.WantsPct /= sum
	p.SavingsPct /= sum
	return p
}

// FindPreset resolves a weak preset reference by id. A missing or
// deleted preset returns ok == false ("no active preset"), never an
// error.
func FindPreset(presets []MethodPreset, id string) (MethodPreset, bool) {
	if id == "" {
		return MethodPreset{}, false
	}
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return MethodPreset{}, false
}
