package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/google/uuid"
)

// GeneratedPlan is a converted plan ready for the save gate.
type GeneratedPlan struct {
	Campaign *domain.Campaign
	Phases   domain.PhaseSequence
}

// Convert transforms a validated PlanFile into domain values. Call
// ValidatePlanSchema first; Convert assumes the plan is structurally valid.
// Dates are rewritten in canonical local form and shares normalized. The
// campaign is stamped as created at now.
func Convert(plan *PlanFile, now time.Time) (*GeneratedPlan, error) {
	now = now.UTC().Truncate(time.Second)

	start, err := canonicalDate("campaign.fundraising_start", plan.Campaign.FundraisingStart)
	if err != nil {
		return nil, err
	}
	end, err := canonicalDate("campaign.fundraising_end", plan.Campaign.FundraisingEnd)
	if err != nil {
		return nil, err
	}

	status := domain.CampaignDraft
	if plan.Campaign.Status != "" {
		status = domain.CampaignStatus(plan.Campaign.Status)
	}

	campaign := &domain.Campaign{
		ID:               uuid.New().String(),
		ShortID:          strings.ToUpper(plan.Campaign.ShortID),
		Title:            strings.TrimSpace(plan.Campaign.Title),
		TargetAmount:     plan.Campaign.TargetAmount,
		FundraisingStart: start,
		FundraisingEnd:   end,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	phases := make(domain.PhaseSequence, 0, len(plan.Phases))
	for i, p := range plan.Phases {
		prefix := fmt.Sprintf("phases[%d]", i)
		var milestones [3]string
		for j, raw := range []string{p.ProcurementAt, p.PreparationAt, p.DistributionAt} {
			if milestones[j], err = canonicalDate(prefix, raw); err != nil {
				return nil, err
			}
		}
		phases = append(phases, domain.Phase{
			Name:              strings.TrimSpace(p.Name),
			Location:          strings.TrimSpace(p.Location),
			ProcurementAt:     milestones[0],
			PreparationAt:     milestones[1],
			DistributionAt:    milestones[2],
			IngredientShare:   domain.NormalizePercentOnBlur(string(p.IngredientShare)),
			PreparationShare:  domain.NormalizePercentOnBlur(string(p.PreparationShare)),
			DistributionShare: domain.NormalizePercentOnBlur(string(p.DistributionShare)),
		})
	}

	return &GeneratedPlan{Campaign: campaign, Phases: phases}, nil
}

func canonicalDate(field, raw string) (string, error) {
	l, ok := domain.ParseLocalDateTime(raw)
	if !ok {
		return "", fmt.Errorf("%s: invalid date-time %q", field, raw)
	}
	return l.String(), nil
}
