package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/repository"
)

type phaseEditService struct {
	campaigns   repository.CampaignRepo
	phases      repository.PhaseRepo
	syncer      PhaseSyncer
	offsetHours int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewPhaseEditService(
	campaigns repository.CampaignRepo,
	phases repository.PhaseRepo,
	syncer PhaseSyncer,
	offsetHours int,
	observers ...UseCaseObserver,
) PhaseEditService {
	return &phaseEditService{
		campaigns:   campaigns,
		phases:      phases,
		syncer:      syncer,
		offsetHours: offsetHours,
		now:         time.Now,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *phaseEditService) Load(ctx context.Context, campaignID string) (domain.PhaseSequence, error) {
	records, err := s.phases.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return restoreRecords(records, s.offsetHours), nil
}

func (s *phaseEditService) Begin(ctx context.Context, campaignID string) (*EditSession, error) {
	c, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	persisted, err := s.Load(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("loading phases: %w", err)
	}

	session := NewEditSession(c, domain.NewPhaseSequence(persisted, s.now()))
	session.store = s
	return session, nil
}

func (s *phaseEditService) export(phases domain.PhaseSequence) []domain.ExportedPhase {
	return domain.ExportPhases(phases, s.offsetHours)
}

func (s *phaseEditService) sync(ctx context.Context, plan SyncPlan) (result *SyncResult, err error) {
	fields := map[string]any{
		"campaign_id": plan.CampaignID,
		"phase_count": len(plan.Phases),
	}
	done := trackUseCase(ctx, s.observer, "save-phases", fields)
	defer func() { done(err) }()

	result, err = s.syncer.Sync(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}
	fields["created"] = result.Created
	fields["updated"] = result.Updated
	fields["deleted"] = result.Deleted
	return result, nil
}
