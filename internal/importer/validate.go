package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mealfund/internal/domain"
)

// ValidatePlanSchema checks the plan file for structural errors before
// conversion: required fields, date formats and percent syntax. All errors
// are collected. Chronology and budget rules are checked later by
// plancheck, against the converted plan.
func ValidatePlanSchema(plan *PlanFile) []error {
	var errs []error
	errs = append(errs, validateCampaign(&plan.Campaign)...)

	if len(plan.Phases) == 0 {
		errs = append(errs, fmt.Errorf("phases: at least one phase is required"))
	}
	for i := range plan.Phases {
		errs = append(errs, validatePhase(fmt.Sprintf("phases[%d]", i), &plan.Phases[i])...)
	}
	return errs
}

func validateCampaign(c *CampaignImport) []error {
	var errs []error

	if c.ShortID == "" {
		errs = append(errs, fmt.Errorf("campaign.short_id is required"))
	} else {
		probe := domain.Campaign{ShortID: strings.ToUpper(c.ShortID)}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("campaign.short_id: %w", err))
		}
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, fmt.Errorf("campaign.title is required"))
	}
	if c.TargetAmount < 0 {
		errs = append(errs, fmt.Errorf("campaign.target_amount must not be negative"))
	}
	if c.Status != "" && !domain.ValidCampaignStatuses[c.Status] {
		errs = append(errs, fmt.Errorf("campaign.status: invalid value %q", c.Status))
	}
	errs = append(errs, validateRequiredDate("campaign.fundraising_start", c.FundraisingStart)...)
	errs = append(errs, validateRequiredDate("campaign.fundraising_end", c.FundraisingEnd)...)
	return errs
}

func validatePhase(prefix string, p *PhaseImport) []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if strings.TrimSpace(p.Location) == "" {
		errs = append(errs, fmt.Errorf("%s.location is required", prefix))
	}
	errs = append(errs, validateRequiredDate(prefix+".procurement_at", p.ProcurementAt)...)
	errs = append(errs, validateRequiredDate(prefix+".preparation_at", p.PreparationAt)...)
	errs = append(errs, validateRequiredDate(prefix+".distribution_at", p.DistributionAt)...)
	errs = append(errs, validateShare(prefix+".ingredient_share", p.IngredientShare)...)
	errs = append(errs, validateShare(prefix+".preparation_share", p.PreparationShare)...)
	errs = append(errs, validateShare(prefix+".distribution_share", p.DistributionShare)...)
	return errs
}

func validateRequiredDate(field, raw string) []error {
	if strings.TrimSpace(raw) == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, ok := domain.ParseLocalDateTime(raw); !ok {
		return []error{fmt.Errorf("%s: invalid date-time %q (expected YYYY-MM-DDTHH:MM)", field, raw)}
	}
	return nil
}

func validateShare(field string, s Share) []error {
	raw := strings.TrimSpace(string(s))
	if raw == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if !domain.IsValidPercentInput(raw) {
		return []error{fmt.Errorf("%s: invalid percentage %q", field, raw)}
	}
	return nil
}
