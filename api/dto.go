/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. Most domain
  types already carry camelCase JSON tags and cross the wire as-is; DTOs
  exist where the wire shape must differ from the in-memory shape.

THE PAYOFF DTOS:
  The payoff projector uses +Inf as its "never pays off" sentinel, which
  encoding/json refuses to serialize. PayoffSummaryDTO maps those fields
  to nullable pointers: unbounded figures become JSON null.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - budget/payoff.go: The sentinel convention being translated here
*/
package api

import (
	"github.com/s3h4n/moneee/budget"
	"github.com/s3h4n/moneee/store/sqlite"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreatePlanRequest is the request to create a plan.
type CreatePlanRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	PresetID string `json:"presetId"`
}

// MethodRequest changes a plan's budgeting method.
type MethodRequest struct {
	Mode     budget.MethodMode `json:"mode"`
	PresetID string            `json:"presetId"`
}

// PresetRequest creates or updates a method preset. When Renormalise is
// set the fractions are scaled to sum to 1.0 before saving.
type PresetRequest struct {
	Name        string  `json:"name"`
	NeedsPct    float64 `json:"needsPct"`
	WantsPct    float64 `json:"wantsPct"`
	SavingsPct  float64 `json:"savingsPct"`
	Renormalise bool    `json:"renormalise"`
}

// CreateScenarioRequest clones a base plan into a what-if scenario.
type CreateScenarioRequest struct {
	BasePlanID string `json:"basePlanId"`
	Name       string `json:"name"`
}

// PasscodeRequest carries a plaintext passcode for setting or verifying.
// The plaintext never reaches storage; only its bcrypt hash does.
type PasscodeRequest struct {
	Passcode string `json:"passcode"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// PayoffStepDTO is a per-debt projection row with a nullable month count.
type PayoffStepDTO struct {
	DebtID       string   `json:"debtId"`
	Name         string   `json:"name"`
	Months       *float64 `json:"months"`
	InterestPaid *float64 `json:"interestPaid"`
	TotalPaid    *float64 `json:"totalPaid"`
}

// PayoffSummaryDTO is the payoff projection with unbounded figures
// rendered as null.
type PayoffSummaryDTO struct {
	Strategy           budget.Strategy `json:"strategy"`
	Steps              []PayoffStepDTO `json:"steps"`
	TotalInterest      *float64        `json:"totalInterest"`
	MonthsToDebtFree   *float64        `json:"monthsToDebtFree"`
	InsufficientBudget bool            `json:"insufficientBudget"`
}

// PayoffCompareDTO holds both strategies side by side.
type PayoffCompareDTO struct {
	Snowball  PayoffSummaryDTO `json:"snowball"`
	Avalanche PayoffSummaryDTO `json:"avalanche"`
}

// ScenarioCompareDTO holds the base plan's summary next to the
// scenario's, with per-field deltas (scenario minus base).
type ScenarioCompareDTO struct {
	BasePlanID string             `json:"basePlanId"`
	ScenarioID string             `json:"scenarioId"`
	Base       budget.PlanSummary `json:"base"`
	Scenario   budget.PlanSummary `json:"scenario"`
	Delta      budget.PlanSummary `json:"delta"`
}

// RealityCheckDTO wraps the deltas with the targets they were measured
// against.
type RealityCheckDTO struct {
	Targets budget.Targets      `json:"targets"`
	Actual  budget.Allocations  `json:"actual"`
	Check   budget.RealityCheck `json:"check"`
}

// VerifyPasscodeDTO reports whether a submitted passcode matched.
type VerifyPasscodeDTO struct {
	Valid bool `json:"valid"`
}

// ExportDTO is the full-backup shape written by /api/export and read
// back by /api/import.
type ExportDTO struct {
	Version    int                   `json:"version"`
	ExportedAt string                `json:"exportedAt"`
	Plans      []budget.Plan         `json:"plans"`
	Presets    []budget.MethodPreset `json:"presets"`
	Scenarios  []budget.Scenario     `json:"scenarios"`
	Settings   sqlite.Settings       `json:"settings"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toPayoffSummaryDTO(s budget.DebtPayoffSummary) PayoffSummaryDTO {
	steps := make([]PayoffStepDTO, len(s.Steps))
	for i, step := range s.Steps {
		steps[i] = PayoffStepDTO{
			DebtID:       step.DebtID,
			Name:         step.Name,
			Months:       finiteOrNull(step.Months),
			InterestPaid: finiteOrNull(step.InterestPaid),
			TotalPaid:    finiteOrNull(step.TotalPaid),
		}
	}
	return PayoffSummaryDTO{
		Strategy:           s.Strategy,
		Steps:              steps,
		TotalInterest:      finiteOrNull(s.TotalInterest),
		MonthsToDebtFree:   finiteOrNull(s.MonthsToDebtFree),
		InsufficientBudget: s.InsufficientBudget,
	}
}

// finiteOrNull maps the unbounded sentinel to nil so it serializes as
// JSON null.
func finiteOrNull(v float64) *float64 {
	if budget.IsUnbounded(v) {
		return nil
	}
	return &v
}
