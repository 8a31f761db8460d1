package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/plancheck"
	"github.com/stretchr/testify/assert"
)

func samplePhases() domain.PhaseSequence {
	return domain.PhaseSequence{
		{
			Name: "Week one", Location: "Hall A",
			ProcurementAt: "2030-01-11T08:00", PreparationAt: "2030-01-11T10:00", DistributionAt: "2030-01-11T14:00",
			IngredientShare: "40", PreparationShare: "30", DistributionShare: "0",
		},
		{
			Name: "Week two", Location: "",
			ProcurementAt: "2030-01-18T08:00", PreparationAt: "bad", DistributionAt: "",
			IngredientShare: "12.50", PreparationShare: "", DistributionShare: "0",
		},
	}
}

func TestFormatLocal(t *testing.T) {
	assert.Equal(t, "Fri 11 Jan 2030 08:00", FormatLocal("2030-01-11T08:00"))
	assert.Contains(t, FormatLocal(""), "--")
	assert.Contains(t, FormatLocal("whenever"), "whenever")
}

func TestFormatShare(t *testing.T) {
	assert.Equal(t, "12.5%", FormatShare("12.50"))
	assert.Equal(t, "0%", FormatShare("0"))
	assert.Contains(t, FormatShare(""), "--")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "5,000,000", FormatAmount(5_000_000))
	assert.Equal(t, "0", FormatAmount(0))
}

func TestFormatPhaseTable(t *testing.T) {
	out := FormatPhaseTable(samplePhases())

	assert.Contains(t, out, "SUBTOTAL")
	assert.Contains(t, out, "Week one")
	assert.Contains(t, out, "70%")
	assert.Contains(t, out, "12.5%")
	assert.Contains(t, out, "bad")
	assert.Contains(t, out, "Budget total:")
	assert.Contains(t, out, "82.5% of 100%")
}

func TestRenderTableAligned_RightAlignsNumbers(t *testing.T) {
	out := RenderTableAligned([]string{"NAME", "N"}, [][]string{{"a", "1"}, {"b", "100"}}, map[int]bool{1: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[2], "  1"), "got %q", lines[2])
	assert.True(t, strings.HasSuffix(lines[3], "100"), "got %q", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatViolations_PreservesOrder(t *testing.T) {
	out := FormatViolations([]string{"budget first", "Phase 1 second"})
	assert.Less(t, strings.Index(out, "budget first"), strings.Index(out, "Phase 1 second"))
	assert.Empty(t, FormatViolations(nil))
}

func TestFormatWarnings_WindowFirst(t *testing.T) {
	out := FormatWarnings(map[int][]plancheck.Violation{
		1:  {{Phase: 2, Message: "Phase 2 cannot precede phase 1"}},
		-1: {{Message: "Fundraising start date must be a future date"}},
	})
	assert.Less(t, strings.Index(out, "Fundraising"), strings.Index(out, "Phase 2"))
}

func TestFormatCampaignShow(t *testing.T) {
	c := &domain.Campaign{
		ShortID: "SOUP01", Title: "Winter Soup", TargetAmount: 250000,
		FundraisingStart: "2030-01-01T00:00", FundraisingEnd: "2030-01-10T00:00",
		Status: domain.CampaignDraft,
	}

	empty := FormatCampaignShow(c, nil, plancheck.Result{})
	assert.Contains(t, empty, "No phases planned yet.")
	assert.Contains(t, empty, "250,000")

	res := plancheck.Result{Errors: []string{"Fill in every field of every phase before saving"}}
	out := FormatCampaignShow(c, samplePhases(), res)
	assert.Contains(t, out, "SOUP01")
	assert.Contains(t, out, "Draft")
	assert.Contains(t, out, "Fill in every field")

	ok := FormatCampaignShow(c, samplePhases()[:1], plancheck.Result{OK: true})
	assert.Contains(t, ok, "Plan is ready to save")
}

func TestFormatCampaignList(t *testing.T) {
	out := FormatCampaignList([]*domain.Campaign{
		{ID: "0123456789", Title: "No short id", Status: domain.CampaignFundraising},
		{ShortID: "RICE01", Title: "Rice", Status: domain.CampaignCancelled},
	})
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "RICE01")
	assert.Contains(t, out, "Fundraising")
	assert.Contains(t, out, "Cancelled")
}
