package domain

import "time"

// ExportOffsetHours compensates for the timezone conversion the phase store
// applies downstream. It is only ever applied through ExportMilestone and
// ImportMilestone.
const ExportOffsetHours = 7

// ExportedPhase is a phase as handed to the sync collaborator: milestones
// shifted for persistence, shares normalized. ID is empty for new phases.
type ExportedPhase struct {
	ID                string
	Position          int
	Name              string
	Location          string
	ProcurementAt     string
	PreparationAt     string
	DistributionAt    string
	IngredientShare   string
	PreparationShare  string
	DistributionShare string
}

// PhaseRecord is a persisted phase row.
type PhaseRecord struct {
	ExportedPhase
	CampaignID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExportMilestone shifts a milestone by +offsetHours on its way to the
// phase store. Unparseable values pass through untouched.
func ExportMilestone(raw string, offsetHours int) string {
	return shiftMilestone(raw, offsetHours)
}

// ImportMilestone undoes ExportMilestone for a milestone read back from
// the phase store.
func ImportMilestone(raw string, offsetHours int) string {
	return shiftMilestone(raw, -offsetHours)
}

func shiftMilestone(raw string, hours int) string {
	l, ok := ParseLocalDateTime(raw)
	if !ok {
		return raw
	}
	return l.WithOffsetHours(hours).String()
}

// ExportPhases converts a validated sequence for the sync collaborator.
func ExportPhases(phases PhaseSequence, offsetHours int) []ExportedPhase {
	out := make([]ExportedPhase, 0, len(phases))
	for i, p := range phases {
		out = append(out, ExportedPhase{
			ID:                p.ID,
			Position:          i,
			Name:              p.Name,
			Location:          p.Location,
			ProcurementAt:     ExportMilestone(p.ProcurementAt, offsetHours),
			PreparationAt:     ExportMilestone(p.PreparationAt, offsetHours),
			DistributionAt:    ExportMilestone(p.DistributionAt, offsetHours),
			IngredientShare:   NormalizePercentOnBlur(p.IngredientShare),
			PreparationShare:  NormalizePercentOnBlur(p.PreparationShare),
			DistributionShare: NormalizePercentOnBlur(p.DistributionShare),
		})
	}
	return out
}

// RestorePhases is the inverse of ExportPhases, used when an edit session
// loads persisted phases.
func RestorePhases(exported []ExportedPhase, offsetHours int) []Phase {
	out := make([]Phase, 0, len(exported))
	for _, e := range exported {
		out = append(out, Phase{
			ID:                e.ID,
			Name:              e.Name,
			Location:          e.Location,
			ProcurementAt:     ImportMilestone(e.ProcurementAt, offsetHours),
			PreparationAt:     ImportMilestone(e.PreparationAt, offsetHours),
			DistributionAt:    ImportMilestone(e.DistributionAt, offsetHours),
			IngredientShare:   e.IngredientShare,
			PreparationShare:  e.PreparationShare,
			DistributionShare: e.DistributionShare,
		})
	}
	return out
}
