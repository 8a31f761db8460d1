package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Phase is one procure, cook, distribute cycle of a campaign. Fields hold
// the raw form values: milestones as local date-time strings, shares as
// decimal strings. ID is empty until the phase has been persisted.
type Phase struct {
	ID                string
	Name              string
	Location          string
	ProcurementAt     string
	PreparationAt     string
	DistributionAt    string
	IngredientShare   string
	PreparationShare  string
	DistributionShare string
}

// Milestones returns procurement, preparation and distribution in order.
func (p Phase) Milestones() [3]string {
	return [3]string{p.ProcurementAt, p.PreparationAt, p.DistributionAt}
}

// Shares returns the ingredient, preparation and distribution shares.
func (p Phase) Shares() [3]string {
	return [3]string{p.IngredientShare, p.PreparationShare, p.DistributionShare}
}

// HasAllMilestones reports whether none of the three milestones is blank.
// It says nothing about whether they parse.
func (p Phase) HasAllMilestones() bool {
	for _, m := range p.Milestones() {
		if blank(m) {
			return false
		}
	}
	return true
}

// IsComplete reports whether every field a finalized phase needs is filled.
// A blank share is not the same as "0".
func (p Phase) IsComplete() bool {
	if blank(p.Name) || blank(p.Location) || !p.HasAllMilestones() {
		return false
	}
	for _, s := range p.Shares() {
		if blank(s) {
			return false
		}
	}
	return true
}

// ShareTotal sums the phase's three shares.
func (p Phase) ShareTotal() decimal.Decimal {
	s := p.Shares()
	return SumPercents(s[:]...)
}

// Get returns the raw value of field.
func (p Phase) Get(field PhaseField) string {
	switch field {
	case FieldName:
		return p.Name
	case FieldLocation:
		return p.Location
	case FieldProcurementAt:
		return p.ProcurementAt
	case FieldPreparationAt:
		return p.PreparationAt
	case FieldDistributionAt:
		return p.DistributionAt
	case FieldIngredientShare:
		return p.IngredientShare
	case FieldPreparationShare:
		return p.PreparationShare
	case FieldDistributionShare:
		return p.DistributionShare
	}
	return ""
}

// Set assigns value to field. Share values are gated by
// IsValidPercentInput so invalid characters never reach the phase.
func (p *Phase) Set(field PhaseField, value string) error {
	if field.IsShare() && !IsValidPercentInput(value) {
		return ErrInvalidPercentInput
	}
	switch field {
	case FieldName:
		p.Name = value
	case FieldLocation:
		p.Location = value
	case FieldProcurementAt:
		p.ProcurementAt = value
	case FieldPreparationAt:
		p.PreparationAt = value
	case FieldDistributionAt:
		p.DistributionAt = value
	case FieldIngredientShare:
		p.IngredientShare = value
	case FieldPreparationShare:
		p.PreparationShare = value
	case FieldDistributionShare:
		p.DistributionShare = value
	default:
		return &UnknownFieldError{Field: string(field)}
	}
	return nil
}

// PhaseSequence is the ordered execution plan of a campaign. Position is
// the only key used for previous-phase comparisons.
type PhaseSequence []Phase

// Clone returns an independent copy.
func (s PhaseSequence) Clone() PhaseSequence {
	if s == nil {
		return nil
	}
	out := make(PhaseSequence, len(s))
	copy(out, s)
	return out
}

// ShareTotal is the grand total of every share across every phase.
func (s PhaseSequence) ShareTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s {
		total = total.Add(p.ShareTotal())
	}
	return total
}

// Default milestone clock times for a freshly created phase.
const (
	defaultProcurementHour  = 8
	defaultPreparationHour  = 10
	defaultDistributionHour = 14
)

// DefaultPhase is the blank phase offered when a campaign has none: the
// day after today at 08:00, 10:00 and 14:00, with zero shares.
func DefaultPhase(today time.Time) Phase {
	tomorrow := Today(today).AddDays(1)
	return Phase{
		ProcurementAt:     tomorrow.At(defaultProcurementHour, 0).String(),
		PreparationAt:     tomorrow.At(defaultPreparationHour, 0).String(),
		DistributionAt:    tomorrow.At(defaultDistributionHour, 0).String(),
		IngredientShare:   "0",
		PreparationShare:  "0",
		DistributionShare: "0",
	}
}

// NewPhaseSequence materializes the sequence an edit session starts from:
// the persisted phases, or a single default phase when there are none.
func NewPhaseSequence(persisted []Phase, today time.Time) PhaseSequence {
	if len(persisted) == 0 {
		return PhaseSequence{DefaultPhase(today)}
	}
	return PhaseSequence(persisted).Clone()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
