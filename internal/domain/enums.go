package domain

type CampaignStatus string

const (
	CampaignDraft       CampaignStatus = "draft"
	CampaignFundraising CampaignStatus = "fundraising"
	CampaignExecuting   CampaignStatus = "executing"
	CampaignCompleted   CampaignStatus = "completed"
	CampaignCancelled   CampaignStatus = "cancelled"
)

// ValidCampaignStatuses is the canonical set of accepted status strings.
var ValidCampaignStatuses = map[string]bool{
	"draft": true, "fundraising": true, "executing": true,
	"completed": true, "cancelled": true,
}

// PhaseField names one editable field of a Phase.
type PhaseField string

const (
	FieldName              PhaseField = "name"
	FieldLocation          PhaseField = "location"
	FieldProcurementAt     PhaseField = "procurement_at"
	FieldPreparationAt     PhaseField = "preparation_at"
	FieldDistributionAt    PhaseField = "distribution_at"
	FieldIngredientShare   PhaseField = "ingredient_share"
	FieldPreparationShare  PhaseField = "preparation_share"
	FieldDistributionShare PhaseField = "distribution_share"
)

// PhaseFields lists every editable field in form order.
var PhaseFields = []PhaseField{
	FieldName, FieldLocation,
	FieldProcurementAt, FieldPreparationAt, FieldDistributionAt,
	FieldIngredientShare, FieldPreparationShare, FieldDistributionShare,
}

// IsShare reports whether f holds a percentage.
func (f PhaseField) IsShare() bool {
	return f == FieldIngredientShare || f == FieldPreparationShare || f == FieldDistributionShare
}

// IsMilestone reports whether f holds a date-time.
func (f PhaseField) IsMilestone() bool {
	return f == FieldProcurementAt || f == FieldPreparationAt || f == FieldDistributionAt
}

// ParsePhaseField accepts the canonical names plus the short aliases used
// on the command line.
func ParsePhaseField(s string) (PhaseField, error) {
	switch s {
	case "name":
		return FieldName, nil
	case "location":
		return FieldLocation, nil
	case "procurement_at", "procurement", "procure":
		return FieldProcurementAt, nil
	case "preparation_at", "preparation", "cook":
		return FieldPreparationAt, nil
	case "distribution_at", "distribution", "distribute":
		return FieldDistributionAt, nil
	case "ingredient_share", "ingredients":
		return FieldIngredientShare, nil
	case "preparation_share", "cooking":
		return FieldPreparationShare, nil
	case "distribution_share", "delivery":
		return FieldDistributionShare, nil
	}
	return "", &UnknownFieldError{Field: s}
}
