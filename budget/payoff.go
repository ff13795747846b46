/*
payoff.go - Debt payoff projection

PURPOSE:
  Simulates month-by-month debt amortization under two ordering
  strategies and produces per-debt and aggregate payoff statistics.

STRATEGIES:
  snowball:   debts ordered by balance, smallest first
  avalanche:  debts ordered by APR, highest first
  Ties keep their original relative order (stable sort).

SIMULATION:
  Each month, every open debt accrues interest at apr/100/12, then pays
  its minimum. The frontmost open debt in strategy order additionally
  receives the whole extra pool (budget minus the sum of nominal
  minimums) — waterfall application, never split. Overpayments are
  credited back so a debt's total paid never exceeds what was actually
  owed plus accrued interest.

TERMINATION:
  A hard ceiling of 600 months guarantees the loop terminates even when
  interest outruns payments. A budget below the sum of minimums, or a
  failure to clear all debts within the ceiling, is reported as
  InsufficientBudget with Unbounded sentinel values — never an error.

KNOWN APPROXIMATION:
  Per-debt Months is reconstructed after the run as
  ceil(totalPaid / max(minimum, 1)), not the month index at which the
  debt actually hit zero. For debts that received extra-pool payments
  this can disagree with the aggregate MonthsToDebtFree. Downstream
  displays depend on the existing numbers, so this is kept as-is.
*/
package budget

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// MaxProjectionMonths is the hard ceiling on the simulation horizon.
const MaxProjectionMonths = 600

// Unbounded is the sentinel for payoff figures that never resolve within
// the simulation horizon. JSON surfaces render it as null.
var Unbounded = math.Inf(1)

// IsUnbounded reports whether a payoff figure is the infinite sentinel.
func IsUnbounded(v float64) bool { return math.IsInf(v, 1) }

// Strategy selects the debt repayment ordering.
type Strategy string

const (
	StrategySnowball  Strategy = "snowball"
	StrategyAvalanche Strategy = "avalanche"
)

// DebtPayoffStep is the projected outcome for a single debt.
type DebtPayoffStep struct {
	DebtID       string  `json:"debtId"`
	Name         string  `json:"name"`
	Months       float64 `json:"months"`
	InterestPaid float64 `json:"interestPaid"`
	TotalPaid    float64 `json:"totalPaid"`
}

// DebtPayoffSummary is the aggregate projection result.
type DebtPayoffSummary struct {
	Strategy           Strategy         `json:"strategy"`
	Steps              []DebtPayoffStep `json:"steps"`
	TotalInterest      float64          `json:"totalInterest"`
	MonthsToDebtFree   float64          `json:"monthsToDebtFree"`
	InsufficientBudget bool             `json:"insufficientBudget"`
}

// sortDebts returns a new slice in strategy order. Stable, so equal keys
// keep their original relative order.
func sortDebts(debts []Debt, strategy Strategy) []Debt {
	sorted := make([]Debt, len(debts))
	copy(sorted, debts)
	if strategy == StrategySnowball {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Balance < sorted[j].Balance })
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].APR > sorted[j].APR })
	}
	return sorted
}

// ProjectDebtPayoff simulates paying off the given debts with a fixed
// monthly budget under the chosen strategy.
func ProjectDebtPayoff(debts []Debt, monthlyBudget float64, strategy Strategy) DebtPayoffSummary {
	return ProjectDebtPayoffHorizon(debts, monthlyBudget, strategy, MaxProjectionMonths)
}

// ProjectDebtPayoffHorizon is ProjectDebtPayoff with an explicit horizon.
// The horizon is clamped to (0, MaxProjectionMonths] so the loop stays
// bounded under pathological interest/payment combinations.
func ProjectDebtPayoffHorizon(debts []Debt, monthlyBudget float64, strategy Strategy, horizon int) DebtPayoffSummary {
	if horizon <= 0 || horizon > MaxProjectionMonths {
		horizon = MaxProjectionMonths
	}

	if len(debts) == 0 {
		return DebtPayoffSummary{Strategy: strategy, Steps: []DebtPayoffStep{}}
	}

	var minimums float64
	for _, d := range debts {
		minimums += d.Minimum
	}

	// Checked before the simulation begins: a budget that cannot cover
	// the nominal minimums never converges.
	if monthlyBudget < minimums {
		steps := make([]DebtPayoffStep, len(debts))
		for i, d := range debts {
			steps[i] = DebtPayoffStep{
				DebtID:       d.ID,
				Name:         d.Name,
				Months:       Unbounded,
				InterestPaid: Unbounded,
				TotalPaid:    Unbounded,
			}
		}
		return DebtPayoffSummary{
			Strategy:           strategy,
			Steps:              steps,
			TotalInterest:      Unbounded,
			MonthsToDebtFree:   Unbounded,
			InsufficientBudget: true,
		}
	}

	type workingDebt struct {
		Debt
		interestPaid float64
		totalPaid    float64
	}

	order := sortDebts(debts, strategy)
	ledger := make([]workingDebt, len(order))
	for i, d := range order {
		ledger[i] = workingDebt{Debt: d}
	}

	anyOpen := func() bool {
		for i := range ledger {
			if ledger[i].Balance > 0 {
				return true
			}
		}
		return false
	}

	months := 0
	var totalInterest float64

	for anyOpen() && months < horizon {
		months++
		// Recomputed off nominal minimums each month, not updated as
		// debts clear.
		extraPool := monthlyBudget - minimums

		for i := range ledger {
			debt := &ledger[i]
			if debt.Balance <= 0 {
				continue
			}

			interest := debt.Balance * debt.APR / 100 / 12
			debt.Balance += interest
			debt.interestPaid += interest
			totalInterest += interest

			payment := debt.Minimum

			// Focused iff every earlier debt in strategy order is
			// cleared: the single frontmost open debt takes the pool.
			focused := true
			for j := 0; j < i; j++ {
				if ledger[j].Balance > 0 {
					focused = false
					break
				}
			}
			if focused && extraPool > 0 {
				payment += extraPool
			}

			debt.Balance -= payment
			debt.totalPaid += payment
			if debt.Balance < 0 {
				// Credit back the overshoot so totalPaid never exceeds
				// what was owed plus accrued interest.
				debt.totalPaid += debt.Balance
				debt.Balance = 0
			}
		}
	}

	steps := make([]DebtPayoffStep, len(ledger))
	allCleared := true
	for i := range ledger {
		debt := &ledger[i]
		monthsToClear := math.Max(math.Ceil(debt.totalPaid/math.Max(debt.Minimum, 1)), 1)
		step := DebtPayoffStep{
			DebtID:       debt.ID,
			Name:         debt.Name,
			Months:       monthsToClear,
			InterestPaid: round2(debt.interestPaid),
			TotalPaid:    round2(debt.totalPaid),
		}
		if debt.Balance != 0 {
			step.Months = Unbounded
			allCleared = false
		}
		steps[i] = step
	}

	summary := DebtPayoffSummary{
		Strategy:         strategy,
		Steps:            steps,
		TotalInterest:    round2(totalInterest),
		MonthsToDebtFree: float64(months),
	}
	if !allCleared {
		summary.MonthsToDebtFree = Unbounded
		summary.InsufficientBudget = true
	}
	return summary
}

// Snowball projects payoff with the smallest-balance-first ordering.
func Snowball(debts []Debt, monthlyBudget float64) DebtPayoffSummary {
	return ProjectDebtPayoff(debts, monthlyBudget, StrategySnowball)
}

// Avalanche projects payoff with the highest-interest-first ordering.
func Avalanche(debts []Debt, monthlyBudget float64) DebtPayoffSummary {
	return ProjectDebtPayoff(debts, monthlyBudget, StrategyAvalanche)
}

// round2 rounds to 2 decimal places using decimal arithmetic so display
// figures don't pick up float residue. Sentinel values pass through.
func round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
