package budget

import "time"

// =============================================================================
// PLAN HEALTH WARNINGS
// =============================================================================

type WarningType string

const (
	WarningOverspend        WarningType = "overspend"
	WarningNegativeLeftover WarningType = "negative-leftover"
	WarningUnderfundedGoals WarningType = "underfunded-goals"
)

// Warning is a single plan health finding.
type Warning struct {
	Type    WarningType `json:"type"`
	Message string      `json:"message"`
}

// EvaluatePlanWarnings derives plan health warnings from a plan. The
// result order is stable (overspend, negative leftover, underfunded
// goals) and reflects check sequence, not severity. Each warning type
// appears at most once; a healthy plan yields an empty slice. Boundary
// conditions are non-triggering: allocations exactly equal to income
// produce no warning.
func EvaluatePlanWarnings(plan Plan, now time.Time) []Warning {
	summary := CalculatePlanSummary(plan, now)
	warnings := []Warning{}

	if summary.Needs+summary.Wants+summary.Savings+summary.Debt > summary.Income {
		warnings = append(warnings, Warning{
			Type:    WarningOverspend,
			Message: "Your allocations are higher than your monthly income.",
		})
	}

	if summary.Leftover < 0 {
		warnings = append(warnings, Warning{
			Type:    WarningNegativeLeftover,
			Message: "Your plan leaves no room for leftover cash. Adjust allocations until leftover is zero or positive.",
		})
	}

	// Accumulate the monthly savings each dated goal still needs.
	var monthlyGoalNeed float64
	for _, goal := range plan.Goals {
		if goal.DueDate == "" {
			continue
		}
		months, ok := monthsUntil(goal.DueDate, now)
		if !ok || months <= 0 {
			continue
		}
		remaining := goal.Target - goal.Current
		if remaining <= 0 {
			continue
		}
		monthlyGoalNeed += remaining / float64(months)
	}

	if monthlyGoalNeed > 0 && monthlyGoalNeed > summary.Savings {
		warnings = append(warnings, Warning{
			Type:    WarningUnderfundedGoals,
			Message: "Savings goals need more monthly allocation to hit targets on time.",
		})
	}

	return warnings
}
