package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() *PlanFile {
	return &PlanFile{
		Campaign: CampaignImport{
			ShortID:          "SOUP01",
			Title:            "Winter Soup",
			TargetAmount:     2_000_000,
			FundraisingStart: "2030-01-01T00:00",
			FundraisingEnd:   "2030-01-10T00:00",
		},
		Phases: []PhaseImport{
			{
				Name: "Week one", Location: "Hall A",
				ProcurementAt: "2030-01-11T08:00", PreparationAt: "2030-01-11T10:00", DistributionAt: "2030-01-11T14:00",
				IngredientShare: "40", PreparationShare: "30", DistributionShare: "30",
			},
		},
	}
}

func errStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func TestValidatePlanSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidatePlanSchema(validPlan()))
}

func TestValidatePlanSchema_LowercaseShortIDAccepted(t *testing.T) {
	plan := validPlan()
	plan.Campaign.ShortID = "soup01"
	assert.Empty(t, ValidatePlanSchema(plan))
}

func TestValidatePlanSchema_MissingCampaignFields(t *testing.T) {
	plan := validPlan()
	plan.Campaign = CampaignImport{TargetAmount: -1, Status: "paused"}

	msgs := errStrings(ValidatePlanSchema(plan))
	assert.Contains(t, msgs, "campaign.short_id is required")
	assert.Contains(t, msgs, "campaign.title is required")
	assert.Contains(t, msgs, "campaign.target_amount must not be negative")
	assert.Contains(t, msgs, `campaign.status: invalid value "paused"`)
	assert.Contains(t, msgs, "campaign.fundraising_start is required")
	assert.Contains(t, msgs, "campaign.fundraising_end is required")
}

func TestValidatePlanSchema_BadShortID(t *testing.T) {
	plan := validPlan()
	plan.Campaign.ShortID = "S1"
	errs := ValidatePlanSchema(plan)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "campaign.short_id")
}

func TestValidatePlanSchema_NoPhases(t *testing.T) {
	plan := validPlan()
	plan.Phases = nil
	assert.Equal(t, []string{"phases: at least one phase is required"}, errStrings(ValidatePlanSchema(plan)))
}

func TestValidatePlanSchema_PhaseErrorsIndexed(t *testing.T) {
	plan := validPlan()
	plan.Phases = append(plan.Phases, PhaseImport{
		Name:            "Week two",
		ProcurementAt:   "next week",
		PreparationAt:   "2030-01-12T10:00",
		IngredientShare: "1.2.3",
	})

	msgs := errStrings(ValidatePlanSchema(plan))
	assert.Equal(t, []string{
		"phases[1].location is required",
		`phases[1].procurement_at: invalid date-time "next week" (expected YYYY-MM-DDTHH:MM)`,
		"phases[1].distribution_at is required",
		`phases[1].ingredient_share: invalid percentage "1.2.3"`,
		"phases[1].preparation_share is required",
		"phases[1].distribution_share is required",
	}, msgs)
}

func TestValidatePlanSchema_ZeroShareAccepted(t *testing.T) {
	plan := validPlan()
	plan.Phases[0].DistributionShare = "0"
	assert.Empty(t, ValidatePlanSchema(plan))
}
