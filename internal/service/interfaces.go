package service

import (
	"context"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/importer"
	"github.com/alexanderramin/mealfund/internal/plancheck"
)

type CampaignService interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	UpdateWindow(ctx context.Context, id string, window domain.FundingWindow) error
	Delete(ctx context.Context, id string) error
}

// PhaseEditService opens edit sessions over a campaign's phase plan and
// saves them through the validation gate.
type PhaseEditService interface {
	// Begin loads the campaign and its phases. A campaign without phases
	// starts with a single default phase.
	Begin(ctx context.Context, campaignID string) (*EditSession, error)
	// Load returns the persisted phases as the user entered them. It is
	// empty for a campaign without phases.
	Load(ctx context.Context, campaignID string) (domain.PhaseSequence, error)
}

// SyncPlan is the validated plan handed to a PhaseSyncer. Phases are in
// execution order with the persistence offset already applied.
type SyncPlan struct {
	CampaignID string
	Window     domain.FundingWindow
	Phases     []domain.ExportedPhase
}

// SyncResult reports what a sync changed. PhaseIDs holds the persisted ID
// of every phase in the plan, in plan order.
type SyncResult struct {
	Created  int
	Updated  int
	Deleted  int
	PhaseIDs []string
}

// PhaseSyncer reconciles persisted phases with a validated plan: phases
// with a known ID are updated, phases without one are created, and
// persisted phases missing from the plan are deleted.
type PhaseSyncer interface {
	Sync(ctx context.Context, plan SyncPlan) (*SyncResult, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Campaign   *domain.Campaign
	PhaseCount int
}

// PlanCheck is the outcome of checking a plan file without importing it.
type PlanCheck struct {
	Plan   *importer.GeneratedPlan
	Result plancheck.Result
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, plan *importer.PlanFile) (*ImportResult, error)
	CheckPlan(ctx context.Context, filePath string) (*PlanCheck, error)
}
