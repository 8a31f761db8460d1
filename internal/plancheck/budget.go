package plancheck

import (
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/shopspring/decimal"
)

// PhasesComplete is the completeness gate: the sequence is non-empty and
// every phase has name, location, three milestones and three shares.
func PhasesComplete(phases domain.PhaseSequence) bool {
	if len(phases) == 0 {
		return false
	}
	for _, p := range phases {
		if !p.IsComplete() {
			return false
		}
	}
	return true
}

// CheckBudget reports whether the percentage allocation is complete and
// totals 100 within domain.PercentTolerance. A lone phase is the whole
// campaign's spend and must total 100 itself. With several phases only the
// grand total counts; a phase may hold 0% until funds are earned.
func CheckBudget(phases domain.PhaseSequence) bool {
	if !PhasesComplete(phases) {
		return false
	}
	if len(phases) == 1 {
		return domain.PercentTotalsMatch(phases[0].ShareTotal(), domain.FullBudget)
	}
	return domain.PercentTotalsMatch(BudgetTotal(phases), domain.FullBudget)
}

// BudgetTotal is the sum of all 3×N shares.
func BudgetTotal(phases domain.PhaseSequence) decimal.Decimal {
	return phases.ShareTotal()
}

// budgetViolation explains a failed CheckBudget with a single message.
func budgetViolation(phases domain.PhaseSequence) Violation {
	if !PhasesComplete(phases) {
		return windowViolation(RuleBudgetIncomplete, "Fill in every field of every phase before saving")
	}
	return windowViolation(RuleBudgetNotFullyShared,
		"Budget shares across all phases must total 100% (currently "+BudgetTotal(phases).String()+"%)")
}
