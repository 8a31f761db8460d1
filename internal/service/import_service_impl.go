package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mealfund/internal/db"
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/importer"
	"github.com/alexanderramin/mealfund/internal/plancheck"
	"github.com/alexanderramin/mealfund/internal/repository"
)

type importService struct {
	uow         db.UnitOfWork
	offsetHours int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, offsetHours int, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:         uow,
		offsetHours: offsetHours,
		now:         time.Now,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*ImportResult, error) {
	plan, err := importer.LoadPlan(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading plan file: %w", err)
	}
	return s.importPlan(ctx, plan)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, plan *importer.PlanFile) (*ImportResult, error) {
	return s.importPlan(ctx, plan)
}

// CheckPlan runs the import pipeline up to the save gate without touching
// the database. Structural problems are returned as an error; rule
// violations are reported in the result.
func (s *importService) CheckPlan(ctx context.Context, filePath string) (*PlanCheck, error) {
	plan, err := importer.LoadPlan(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading plan file: %w", err)
	}
	generated, err := s.convert(plan)
	if err != nil {
		return nil, err
	}
	return &PlanCheck{
		Plan:   generated,
		Result: plancheck.ValidateForSave(generated.Campaign.Window(), generated.Phases, s.now()),
	}, nil
}

func (s *importService) convert(plan *importer.PlanFile) (*importer.GeneratedPlan, error) {
	if errs := importer.ValidatePlanSchema(plan); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	generated, err := importer.Convert(plan, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting plan: %w", err)
	}
	return generated, nil
}

func (s *importService) importPlan(ctx context.Context, plan *importer.PlanFile) (result *ImportResult, err error) {
	fields := map[string]any{
		"short_id":    plan.Campaign.ShortID,
		"phase_count": len(plan.Phases),
	}
	done := trackUseCase(ctx, s.observer, "import-plan", fields)
	defer func() { done(err) }()

	var generated *importer.GeneratedPlan
	generated, err = s.convert(plan)
	if err != nil {
		return nil, err
	}

	res := plancheck.ValidateForSave(generated.Campaign.Window(), generated.Phases, s.now())
	fields["error_count"] = len(res.Errors)
	if !res.OK {
		return nil, &SaveBlockedError{Result: res}
	}

	campaign := generated.Campaign
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCampaigns := repository.NewSQLiteCampaignRepo(tx)
		if err := txCampaigns.Create(ctx, campaign); err != nil {
			return fmt.Errorf("creating campaign: %w", err)
		}
		_, err := syncWithin(ctx, tx, SyncPlan{
			CampaignID: campaign.ID,
			Window:     campaign.Window(),
			Phases:     domain.ExportPhases(generated.Phases, s.offsetHours),
		}, campaign.CreatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	fields["campaign_id"] = campaign.ID
	return &ImportResult{Campaign: campaign, PhaseCount: len(generated.Phases)}, nil
}
