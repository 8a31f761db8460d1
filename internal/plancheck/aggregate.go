package plancheck

import (
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
)

// Result is the save gate outcome. Errors holds one message per violation,
// budget first, then timeline in phase order.
type Result struct {
	OK         bool
	Errors     []string
	Violations []Violation
}

// ValidateForSave runs the budget check then the timeline check and
// concatenates their findings. A save may proceed only when OK is true.
func ValidateForSave(window domain.FundingWindow, phases domain.PhaseSequence, today time.Time) Result {
	var violations []Violation
	if !CheckBudget(phases) {
		violations = append(violations, budgetViolation(phases))
	}
	violations = append(violations, CheckTimeline(window, phases, today)...)
	return NewResult(violations)
}

// NewResult builds a Result from violations, keeping their order.
func NewResult(violations []Violation) Result {
	errs := make([]string, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, v.Message)
	}
	return Result{
		OK:         len(violations) == 0,
		Errors:     errs,
		Violations: violations,
	}
}

// CanAppendPhase reports whether a new blank phase may be added. It reuses
// the completeness gate so half-filled phases cannot pile up.
func CanAppendPhase(phases domain.PhaseSequence) bool {
	return PhasesComplete(phases)
}

// PhaseWellFormed returns the timeline violations attributed to the phase
// at 0-based index i, for inline warnings next to that phase.
func PhaseWellFormed(window domain.FundingWindow, phases domain.PhaseSequence, i int, today time.Time) []Violation {
	if i < 0 || i >= len(phases) {
		return nil
	}
	return PhaseViolations(window, phases, today)[i]
}
