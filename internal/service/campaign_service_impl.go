package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/plancheck"
	"github.com/alexanderramin/mealfund/internal/repository"
	"github.com/google/uuid"
)

type campaignService struct {
	campaigns   repository.CampaignRepo
	phases      repository.PhaseRepo
	offsetHours int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewCampaignService(
	campaigns repository.CampaignRepo,
	phases repository.PhaseRepo,
	offsetHours int,
	observers ...UseCaseObserver,
) CampaignService {
	return &campaignService{
		campaigns:   campaigns,
		phases:      phases,
		offsetHours: offsetHours,
		now:         time.Now,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *campaignService) Create(ctx context.Context, c *domain.Campaign) (err error) {
	fields := map[string]any{"short_id": c.ShortID}
	done := trackUseCase(ctx, s.observer, "create-campaign", fields)
	defer func() { done(err) }()

	if err = c.ValidateShortID(); err != nil {
		return err
	}
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return fmt.Errorf("campaign title is required")
	}
	if c.TargetAmount < 0 {
		return fmt.Errorf("target amount must not be negative")
	}
	if c.Status == "" {
		c.Status = domain.CampaignDraft
	}
	if !domain.ValidCampaignStatuses[string(c.Status)] {
		return fmt.Errorf("invalid campaign status %q", c.Status)
	}

	window, err := canonicalWindow(c.Window())
	if err != nil {
		return err
	}
	if err = blocked(plancheck.CheckWindow(window, s.now())); err != nil {
		return err
	}
	c.FundraisingStart, c.FundraisingEnd = window.Start, window.End

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := s.now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	fields["campaign_id"] = c.ID
	return s.campaigns.Create(ctx, c)
}

func (s *campaignService) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.campaigns.GetByID(ctx, id)
}

func (s *campaignService) GetByShortID(ctx context.Context, shortID string) (*domain.Campaign, error) {
	return s.campaigns.GetByShortID(ctx, shortID)
}

func (s *campaignService) List(ctx context.Context) ([]*domain.Campaign, error) {
	return s.campaigns.List(ctx)
}

// UpdateWindow moves the funding window. The persisted phases are checked
// against the new window, so a move that would leave a phase starting
// before funding ends is refused.
func (s *campaignService) UpdateWindow(ctx context.Context, id string, w domain.FundingWindow) (err error) {
	done := trackUseCase(ctx, s.observer, "update-window", map[string]any{"campaign_id": id})
	defer func() { done(err) }()

	window, err := canonicalWindow(w)
	if err != nil {
		return err
	}
	if _, err = s.campaigns.GetByID(ctx, id); err != nil {
		return err
	}
	records, err := s.phases.ListByCampaign(ctx, id)
	if err != nil {
		return err
	}
	phases := restoreRecords(records, s.offsetHours)
	if err = blocked(plancheck.CheckTimeline(window, phases, s.now())); err != nil {
		return err
	}
	return s.campaigns.UpdateWindow(ctx, id, window.Start, window.End)
}

// Delete removes the campaign; its phases go with it.
func (s *campaignService) Delete(ctx context.Context, id string) error {
	return s.campaigns.Delete(ctx, id)
}
