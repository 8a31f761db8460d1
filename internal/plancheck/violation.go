// Package plancheck validates a campaign's phase plan: the chronology of the
// funding window and phase milestones, and the percentage budget split.
// Every function here is pure and total; none of them return errors.
package plancheck

import "fmt"

// Rule identifies which constraint a Violation broke.
type Rule string

const (
	RuleStartNotFuture       Rule = "start_not_future"
	RuleEndNotAfterStart     Rule = "end_not_after_start"
	RulePreparationOrder     Rule = "preparation_not_after_procurement"
	RuleDistributionOrder    Rule = "distribution_not_after_preparation"
	RuleBeforeFundingEnd     Rule = "procurement_not_after_funding_end"
	RuleOverlapsPrevious     Rule = "overlaps_previous_phase"
	RulePrecedesPrevious     Rule = "precedes_previous_phase"
	RuleBudgetIncomplete     Rule = "budget_incomplete"
	RuleBudgetNotFullyShared Rule = "budget_not_100"
)

// Violation is one broken rule. Phase is the 1-based position of the
// offending phase, or 0 when the violation concerns the whole campaign.
type Violation struct {
	Phase   int
	Rule    Rule
	Message string
}

func (v Violation) String() string {
	return v.Message
}

func windowViolation(rule Rule, msg string) Violation {
	return Violation{Rule: rule, Message: msg}
}

func phaseViolation(phase int, rule Rule, format string, args ...any) Violation {
	return Violation{Phase: phase, Rule: rule, Message: fmt.Sprintf(format, args...)}
}
