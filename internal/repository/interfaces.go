package repository

import (
	"context"

	"github.com/alexanderramin/mealfund/internal/domain"
)

type CampaignRepo interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error)
	Update(ctx context.Context, c *domain.Campaign) error
	UpdateWindow(ctx context.Context, id, start, end string) error
	Delete(ctx context.Context, id string) error
}

// PhaseRepo stores phases exactly as exported: milestones already carry the
// persistence offset.
type PhaseRepo interface {
	Create(ctx context.Context, p *domain.PhaseRecord) error
	GetByID(ctx context.Context, id string) (*domain.PhaseRecord, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.PhaseRecord, error)
	Update(ctx context.Context, p *domain.PhaseRecord) error
	Delete(ctx context.Context, id string) error
}
