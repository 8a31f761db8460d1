package plancheck

import (
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
)

// CheckTimeline returns every chronological violation in the funding window
// and the phase sequence, in phase order. Every rule is a strict
// inequality: equal instants are a violation. A comparison whose operands
// do not parse is skipped; missing dates are the completeness gate's job.
func CheckTimeline(window domain.FundingWindow, phases domain.PhaseSequence, today time.Time) []Violation {
	out := CheckWindow(window, today)
	end, endOK := window.EndAt()

	for i, p := range phases {
		if !p.HasAllMilestones() {
			continue
		}
		out = append(out, checkPhase(i, p, end, endOK)...)
		if i > 0 && phases[i-1].HasAllMilestones() {
			out = append(out, checkAgainstPrevious(i, p, phases[i-1])...)
		}
	}
	return out
}

// CheckWindow runs the funding window rules alone: the start date lies
// after today's date and the end is after the start.
func CheckWindow(window domain.FundingWindow, today time.Time) []Violation {
	var out []Violation
	start, startOK := window.StartAt()
	end, endOK := window.EndAt()

	// Date granularity: any time today is rejected, any time tomorrow passes.
	if startOK && !start.DateOnly().After(domain.Today(today)) {
		out = append(out, windowViolation(RuleStartNotFuture, "Fundraising start date must be a future date"))
	}
	if startOK && endOK && !end.After(start) {
		out = append(out, windowViolation(RuleEndNotAfterStart, "Fundraising end date must be after the start date"))
	}
	return out
}

func checkPhase(i int, p domain.Phase, fundingEnd domain.LocalDateTime, fundingEndOK bool) []Violation {
	var out []Violation
	n := i + 1

	procurement, procOK := domain.ParseLocalDateTime(p.ProcurementAt)
	preparation, prepOK := domain.ParseLocalDateTime(p.PreparationAt)
	distribution, distOK := domain.ParseLocalDateTime(p.DistributionAt)

	if procOK && prepOK && !preparation.After(procurement) {
		out = append(out, phaseViolation(n, RulePreparationOrder,
			"Phase %d: preparation must be after procurement", n))
	}
	if prepOK && distOK && !distribution.After(preparation) {
		out = append(out, phaseViolation(n, RuleDistributionOrder,
			"Phase %d: distribution must be after preparation", n))
	}
	if procOK && fundingEndOK && !procurement.After(fundingEnd) {
		out = append(out, phaseViolation(n, RuleBeforeFundingEnd,
			"Phase %d must start after funding ends", n))
	}
	return out
}

// checkAgainstPrevious compares only with the immediately preceding phase.
// The ordering is therefore pairwise, not transitive across the sequence.
func checkAgainstPrevious(i int, p, prev domain.Phase) []Violation {
	var out []Violation
	n := i + 1

	procurement, procOK := domain.ParseLocalDateTime(p.ProcurementAt)
	if !procOK {
		return nil
	}

	if prevDistribution, ok := domain.ParseLocalDateTime(prev.DistributionAt); ok && !procurement.After(prevDistribution) {
		out = append(out, phaseViolation(n, RuleOverlapsPrevious,
			"Phase %d must start after phase %d distribution", n, n-1))
	}
	if prevProcurement, ok := domain.ParseLocalDateTime(prev.ProcurementAt); ok && !procurement.After(prevProcurement) {
		out = append(out, phaseViolation(n, RulePrecedesPrevious,
			"Phase %d cannot precede phase %d", n, n-1))
	}
	return out
}

// PhaseViolations groups timeline violations by 0-based phase index for
// inline warnings. Window-level violations are keyed by -1.
func PhaseViolations(window domain.FundingWindow, phases domain.PhaseSequence, today time.Time) map[int][]Violation {
	grouped := make(map[int][]Violation)
	for _, v := range CheckTimeline(window, phases, today) {
		grouped[v.Phase-1] = append(grouped[v.Phase-1], v)
	}
	return grouped
}
