package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_CanonicalizesValues(t *testing.T) {
	plan := validPlan()
	plan.Campaign.ShortID = "soup01"
	plan.Campaign.FundraisingStart = "2030-01-01T00:00:00+07:00"
	plan.Phases[0].ProcurementAt = "2030-01-11 08:00"
	plan.Phases[0].IngredientShare = "40,0"
	plan.Phases[0].Name = "  Week one  "

	stamp := time.Date(2029, 12, 1, 9, 30, 15, 500, time.FixedZone("ICT", 7*3600))
	gen, err := Convert(plan, stamp)
	require.NoError(t, err)

	c := gen.Campaign
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, time.Date(2029, 12, 1, 2, 30, 15, 0, time.UTC), c.CreatedAt)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	assert.Equal(t, "SOUP01", c.ShortID)
	assert.Equal(t, "2030-01-01T00:00", c.FundraisingStart)
	assert.Equal(t, domain.CampaignDraft, c.Status)
	assert.Equal(t, int64(2_000_000), c.TargetAmount)

	require.Len(t, gen.Phases, 1)
	p := gen.Phases[0]
	assert.Equal(t, "Week one", p.Name)
	assert.Equal(t, "2030-01-11T08:00", p.ProcurementAt)
	assert.Equal(t, "40", p.IngredientShare)
	assert.Empty(t, p.ID, "imported phases are new")
	assert.True(t, p.IsComplete())
}

func TestConvert_KeepsExplicitStatus(t *testing.T) {
	plan := validPlan()
	plan.Campaign.Status = "fundraising"

	gen, err := Convert(plan, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.CampaignFundraising, gen.Campaign.Status)
}

func TestConvert_InvalidDate(t *testing.T) {
	plan := validPlan()
	plan.Phases[0].DistributionAt = "never"

	_, err := Convert(plan, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phases[0]")
}
