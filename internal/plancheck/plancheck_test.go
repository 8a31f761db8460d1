package plancheck

import (
	"testing"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// today is mid-afternoon so date-only truncation is exercised.
var today = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

// day returns today+n at hh:mm in canonical local form.
func day(n, hh, mm int) string {
	return domain.Today(today).AddDays(n).At(hh, mm).String()
}

func window(startDay, endDay int) domain.FundingWindow {
	return domain.FundingWindow{Start: day(startDay, 0, 0), End: day(endDay, 0, 0)}
}

func phaseOn(d int, shares ...string) domain.Phase {
	p := domain.Phase{
		Name:              "Phase",
		Location:          "Kitchen",
		ProcurementAt:     day(d, 8, 0),
		PreparationAt:     day(d, 10, 0),
		DistributionAt:    day(d, 14, 0),
		IngredientShare:   "40",
		PreparationShare:  "30",
		DistributionShare: "30",
	}
	if len(shares) == 3 {
		p.IngredientShare, p.PreparationShare, p.DistributionShare = shares[0], shares[1], shares[2]
	}
	return p
}

func rules(vs []Violation) []Rule {
	out := make([]Rule, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Rule)
	}
	return out
}

// --- Scenarios ---

func TestValidateForSave_ScenarioA_Valid(t *testing.T) {
	res := ValidateForSave(window(1, 3), domain.PhaseSequence{phaseOn(4)}, today)
	assert.True(t, res.OK)
	assert.Empty(t, res.Errors)
}

func TestValidateForSave_ScenarioB_StartsAtFundingEnd(t *testing.T) {
	p := phaseOn(4)
	p.ProcurementAt = day(3, 0, 0)

	res := ValidateForSave(window(1, 3), domain.PhaseSequence{p}, today)
	assert.False(t, res.OK)
	assert.Equal(t, []string{"Phase 1 must start after funding ends"}, res.Errors)
}

func TestValidateForSave_ScenarioC_PhasePrecedesPrevious(t *testing.T) {
	first := phaseOn(6, "20", "20", "20")
	second := phaseOn(5, "20", "10", "10")

	res := ValidateForSave(window(1, 3), domain.PhaseSequence{first, second}, today)
	assert.False(t, res.OK)
	assert.Contains(t, res.Errors, "Phase 2 cannot precede phase 1")
}

func TestValidateForSave_ScenarioD_BudgetFixedByEdit(t *testing.T) {
	seq := domain.PhaseSequence{phaseOn(4, "50", "40", "0")}

	res := ValidateForSave(window(1, 3), seq, today)
	assert.False(t, res.OK)
	assert.Equal(t, []string{"Budget shares across all phases must total 100% (currently 90%)"}, res.Errors)

	require.NoError(t, seq[0].Set(domain.FieldDistributionShare, "10"))
	res = ValidateForSave(window(1, 3), seq, today)
	assert.True(t, res.OK)
}

// --- Funding window ---

func TestCheckTimeline_StartToday_AnyTime(t *testing.T) {
	for _, hh := range []int{0, 16, 23} {
		w := domain.FundingWindow{Start: day(0, hh, 59), End: day(3, 0, 0)}
		vs := CheckTimeline(w, nil, today)
		assert.Equal(t, []Rule{RuleStartNotFuture}, rules(vs), "start today at %02d:59", hh)
	}
}

func TestCheckTimeline_StartTomorrowMidnight(t *testing.T) {
	w := domain.FundingWindow{Start: day(1, 0, 0), End: day(3, 0, 0)}
	assert.Empty(t, CheckTimeline(w, nil, today))
}

func TestCheckTimeline_StartInPast(t *testing.T) {
	w := domain.FundingWindow{Start: day(-10, 9, 0), End: day(3, 0, 0)}
	assert.Equal(t, []Rule{RuleStartNotFuture}, rules(CheckTimeline(w, nil, today)))
}

func TestValidateForSave_PastStartReportedRegardlessOfPhases(t *testing.T) {
	w := domain.FundingWindow{Start: day(0, 0, 0), End: day(3, 0, 0)}
	for _, seq := range []domain.PhaseSequence{
		nil,
		{phaseOn(4)},
		{phaseOn(4, "10", "10", "10"), phaseOn(5, "", "", "")},
	} {
		res := ValidateForSave(w, seq, today)
		assert.False(t, res.OK)
		assert.Contains(t, res.Errors, "Fundraising start date must be a future date")
	}
}

func TestCheckTimeline_EndEqualsStart(t *testing.T) {
	w := domain.FundingWindow{Start: day(2, 9, 0), End: day(2, 9, 0)}
	assert.Equal(t, []Rule{RuleEndNotAfterStart}, rules(CheckTimeline(w, nil, today)))
}

func TestCheckTimeline_UnparseableWindowIsSkipped(t *testing.T) {
	w := domain.FundingWindow{Start: "soon", End: ""}
	assert.Empty(t, CheckTimeline(w, domain.PhaseSequence{phaseOn(4)}, today))
}

// --- Intra-phase ---

func TestCheckTimeline_IntraPhaseOrder(t *testing.T) {
	p := phaseOn(4)
	p.PreparationAt = p.ProcurementAt
	p.DistributionAt = day(4, 7, 0)

	vs := CheckTimeline(window(1, 3), domain.PhaseSequence{p}, today)
	want := []Violation{
		{Phase: 1, Rule: RulePreparationOrder, Message: "Phase 1: preparation must be after procurement"},
		{Phase: 1, Rule: RuleDistributionOrder, Message: "Phase 1: distribution must be after preparation"},
	}
	if diff := cmp.Diff(want, vs); diff != "" {
		t.Errorf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckTimeline_ProcurementBeforeFundingEnd(t *testing.T) {
	p := phaseOn(2)
	vs := CheckTimeline(window(1, 3), domain.PhaseSequence{p}, today)
	assert.Equal(t, []Rule{RuleBeforeFundingEnd}, rules(vs))
}

func TestCheckTimeline_PartialPhaseSkipped(t *testing.T) {
	p := phaseOn(2)
	p.DistributionAt = ""
	p.PreparationAt = p.ProcurementAt

	assert.Empty(t, CheckTimeline(window(1, 3), domain.PhaseSequence{p}, today))
}

func TestCheckTimeline_UnparseableMilestoneSkipsOnlyItsComparisons(t *testing.T) {
	p := phaseOn(4)
	p.PreparationAt = "after lunch"
	p.ProcurementAt = day(2, 8, 0)

	vs := CheckTimeline(window(1, 3), domain.PhaseSequence{p}, today)
	assert.Equal(t, []Rule{RuleBeforeFundingEnd}, rules(vs))
}

// --- Inter-phase ---

func TestCheckTimeline_OverlapAtBoundaryIsViolation(t *testing.T) {
	first := phaseOn(4)
	second := phaseOn(5)
	second.ProcurementAt = first.DistributionAt

	vs := CheckTimeline(window(1, 3), domain.PhaseSequence{first, second}, today)
	assert.Equal(t, []Rule{RuleOverlapsPrevious}, rules(vs))
	assert.Equal(t, 2, vs[0].Phase)
	assert.Equal(t, "Phase 2 must start after phase 1 distribution", vs[0].Message)
}

func TestCheckTimeline_OneMinuteAfterPreviousDistribution(t *testing.T) {
	first := phaseOn(4)
	second := phaseOn(4)
	second.ProcurementAt = day(4, 14, 1)
	second.PreparationAt = day(4, 15, 0)
	second.DistributionAt = day(4, 18, 0)

	assert.Empty(t, CheckTimeline(window(1, 3), domain.PhaseSequence{first, second}, today))
}

func TestCheckTimeline_SameProcurementAsPrevious(t *testing.T) {
	first := phaseOn(4)
	second := phaseOn(4)

	vs := CheckTimeline(window(1, 3), domain.PhaseSequence{first, second}, today)
	assert.Equal(t, []Rule{RuleOverlapsPrevious, RulePrecedesPrevious}, rules(vs))
}

func TestCheckTimeline_PreviousPhaseIncompleteSkipsComparison(t *testing.T) {
	first := phaseOn(6)
	first.DistributionAt = ""
	second := phaseOn(5)

	assert.Empty(t, CheckTimeline(window(1, 3), domain.PhaseSequence{first, second}, today))
}

func TestCheckTimeline_OnlyAdjacentPairsCompared(t *testing.T) {
	first := phaseOn(6)
	middle := phaseOn(7)
	middle.PreparationAt = ""
	last := phaseOn(5)

	vs := CheckTimeline(window(1, 3), domain.PhaseSequence{first, middle, last}, today)
	assert.Empty(t, vs, "phase 3 is never compared with phase 1")
}

func TestCheckTimeline_AllViolationsReported(t *testing.T) {
	w := domain.FundingWindow{Start: day(0, 10, 0), End: day(-1, 0, 0)}
	first := phaseOn(4)
	first.PreparationAt = day(4, 7, 0)
	second := phaseOn(3)

	vs := CheckTimeline(w, domain.PhaseSequence{first, second}, today)
	assert.Equal(t, []Rule{
		RuleStartNotFuture,
		RuleEndNotAfterStart,
		RulePreparationOrder,
		RuleOverlapsPrevious,
		RulePrecedesPrevious,
	}, rules(vs))
}

func TestPhaseViolations_GroupedByIndex(t *testing.T) {
	w := domain.FundingWindow{Start: day(0, 0, 0), End: day(3, 0, 0)}
	first := phaseOn(4)
	second := phaseOn(4)

	grouped := PhaseViolations(w, domain.PhaseSequence{first, second}, today)
	assert.Len(t, grouped[-1], 1)
	assert.Empty(t, grouped[0])
	assert.Len(t, grouped[1], 2)

	assert.Equal(t, grouped[1], PhaseWellFormed(w, domain.PhaseSequence{first, second}, 1, today))
	assert.Nil(t, PhaseWellFormed(w, domain.PhaseSequence{first, second}, 5, today))
}

// --- Budget ---

func TestCheckBudget_SinglePhase(t *testing.T) {
	assert.True(t, CheckBudget(domain.PhaseSequence{phaseOn(4, "33.3", "33.3", "33.4")}))
	assert.True(t, CheckBudget(domain.PhaseSequence{phaseOn(4, "33.3", "33.3", "33")}), "99.6 is within tolerance")
	assert.False(t, CheckBudget(domain.PhaseSequence{phaseOn(4, "33", "33", "33")}))
	assert.False(t, CheckBudget(domain.PhaseSequence{phaseOn(4, "50", "50", "10")}))
}

func TestCheckBudget_MultiPhaseOnlyGrandTotalMatters(t *testing.T) {
	seq := domain.PhaseSequence{
		phaseOn(4, "70", "20", "10"),
		phaseOn(5, "0", "0", "0"),
	}
	assert.True(t, CheckBudget(seq))

	seq = domain.PhaseSequence{
		phaseOn(4, "20", "5", "5"),
		phaseOn(5, "25", "20", "25"),
	}
	assert.True(t, CheckBudget(seq))

	seq = domain.PhaseSequence{
		phaseOn(4, "40", "30", "30"),
		phaseOn(5, "40", "30", "30"),
	}
	assert.False(t, CheckBudget(seq), "each phase at 100 is 200 overall")
}

func TestCheckBudget_IncompleteFails(t *testing.T) {
	p := phaseOn(4, "", "50", "50")
	assert.False(t, CheckBudget(domain.PhaseSequence{p}))

	q := phaseOn(4)
	q.Location = ""
	assert.False(t, CheckBudget(domain.PhaseSequence{q}))

	assert.False(t, CheckBudget(nil))
}

func TestValidateForSave_BudgetBeforeTimeline(t *testing.T) {
	p := phaseOn(2, "10", "10", "")
	res := ValidateForSave(window(1, 3), domain.PhaseSequence{p}, today)
	assert.Equal(t, []string{
		"Fill in every field of every phase before saving",
		"Phase 1 must start after funding ends",
	}, res.Errors)
	assert.Equal(t, []Rule{RuleBudgetIncomplete, RuleBeforeFundingEnd}, rules(res.Violations))
}

func TestValidateForSave_Idempotent(t *testing.T) {
	seq := domain.PhaseSequence{phaseOn(4, "50", "20", "0"), phaseOn(4)}
	w := window(0, 3)

	first := ValidateForSave(w, seq, today)
	second := ValidateForSave(w, seq, today)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", diff)
	}
}

func TestCanAppendPhase(t *testing.T) {
	assert.True(t, CanAppendPhase(domain.PhaseSequence{phaseOn(4, "0", "0", "0")}))
	assert.False(t, CanAppendPhase(domain.PhaseSequence{domain.DefaultPhase(today)}))
	assert.False(t, CanAppendPhase(nil))
}

func TestCheckWindow_MatchesTimelineWindowRules(t *testing.T) {
	w := window(0, 0)
	assert.Equal(t, []Rule{RuleStartNotFuture, RuleEndNotAfterStart}, rules(CheckWindow(w, today)))
	assert.Equal(t, CheckWindow(w, today), CheckTimeline(w, nil, today))
	assert.Empty(t, CheckWindow(window(1, 2), today))
}

func TestNewResult_KeepsOrder(t *testing.T) {
	res := NewResult([]Violation{
		{Rule: RuleBudgetIncomplete, Message: "first"},
		{Phase: 2, Rule: RuleOverlapsPrevious, Message: "second"},
	})
	assert.False(t, res.OK)
	assert.Equal(t, []string{"first", "second"}, res.Errors)

	assert.True(t, NewResult(nil).OK)
}
