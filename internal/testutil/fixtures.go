package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Day returns midnight of today+n as a canonical local date-time string,
// moved to hh:mm.
func Day(now time.Time, n, hh, mm int) string {
	return domain.Today(now).AddDays(n).At(hh, mm).String()
}

// Campaign options
type CampaignOption func(*domain.Campaign)

func WithShortID(id string) CampaignOption {
	return func(c *domain.Campaign) {
		c.ShortID = id
	}
}

func WithWindow(start, end string) CampaignOption {
	return func(c *domain.Campaign) {
		c.FundraisingStart = start
		c.FundraisingEnd = end
	}
}

func WithTargetAmount(amount int64) CampaignOption {
	return func(c *domain.Campaign) {
		c.TargetAmount = amount
	}
}

func WithCampaignStatus(s domain.CampaignStatus) CampaignOption {
	return func(c *domain.Campaign) {
		c.Status = s
	}
}

func defaultShortID(title string) string {
	upper := strings.ToUpper(title)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

// NewTestCampaign builds a draft campaign funding from tomorrow to the day
// after next.
func NewTestCampaign(title string, opts ...CampaignOption) *domain.Campaign {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.Campaign{
		ID:               uuid.New().String(),
		ShortID:          defaultShortID(title),
		Title:            title,
		TargetAmount:     5_000_000,
		FundraisingStart: Day(time.Now(), 1, 0, 0),
		FundraisingEnd:   Day(time.Now(), 3, 0, 0),
		Status:           domain.CampaignDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithShares(ingredients, preparation, distribution string) PhaseOption {
	return func(p *domain.Phase) {
		p.IngredientShare = ingredients
		p.PreparationShare = preparation
		p.DistributionShare = distribution
	}
}

func WithPhaseID(id string) PhaseOption {
	return func(p *domain.Phase) {
		p.ID = id
	}
}

func WithLocation(loc string) PhaseOption {
	return func(p *domain.Phase) {
		p.Location = loc
	}
}

// NewTestPhase builds a complete phase on today+dayOffset at 08:00, 10:00
// and 14:00 with a 40/30/30 split.
func NewTestPhase(name string, dayOffset int, opts ...PhaseOption) domain.Phase {
	now := time.Now()
	p := domain.Phase{
		Name:              name,
		Location:          "Community kitchen",
		ProcurementAt:     Day(now, dayOffset, 8, 0),
		PreparationAt:     Day(now, dayOffset, 10, 0),
		DistributionAt:    Day(now, dayOffset, 14, 0),
		IngredientShare:   "40",
		PreparationShare:  "30",
		DistributionShare: "30",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestPhaseRecord builds a persisted phase row for campaignID.
func NewTestPhaseRecord(campaignID string, position int, name string) *domain.PhaseRecord {
	now := time.Now().UTC().Truncate(time.Second)
	exported := domain.ExportPhases(domain.PhaseSequence{NewTestPhase(name, 4+position)}, domain.ExportOffsetHours)[0]
	exported.ID = uuid.New().String()
	exported.Position = position
	return &domain.PhaseRecord{
		ExportedPhase: exported,
		CampaignID:    campaignID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
