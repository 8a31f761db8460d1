package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mealfund/internal/db"
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/repository"
	"github.com/google/uuid"
)

type sqlitePhaseSyncer struct {
	uow db.UnitOfWork
	now func() time.Time
}

// NewSQLitePhaseSyncer returns a PhaseSyncer that applies each plan in a
// single transaction: the funding window and every phase change commit
// together or not at all.
func NewSQLitePhaseSyncer(uow db.UnitOfWork) PhaseSyncer {
	return &sqlitePhaseSyncer{uow: uow, now: time.Now}
}

func (s *sqlitePhaseSyncer) Sync(ctx context.Context, plan SyncPlan) (*SyncResult, error) {
	var result *SyncResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		result, err = syncWithin(ctx, tx, plan, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// syncWithin applies plan using repositories bound to tx. Deletions are
// inferred from absence: a persisted phase whose ID is not in the plan is
// removed. A plan ID that is not persisted for this campaign is treated as
// a new phase. Written rows are stamped with now.
func syncWithin(ctx context.Context, tx db.DBTX, plan SyncPlan, now time.Time) (*SyncResult, error) {
	txCampaigns := repository.NewSQLiteCampaignRepo(tx)
	txPhases := repository.NewSQLitePhaseRepo(tx)

	if err := txCampaigns.UpdateWindow(ctx, plan.CampaignID, plan.Window.Start, plan.Window.End); err != nil {
		return nil, err
	}

	existing, err := txPhases.ListByCampaign(ctx, plan.CampaignID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.PhaseRecord, len(existing))
	for _, rec := range existing {
		byID[rec.ID] = rec
	}

	keep := make(map[string]bool, len(plan.Phases))
	for _, p := range plan.Phases {
		if p.ID != "" && byID[p.ID] != nil {
			keep[p.ID] = true
		}
	}

	result := &SyncResult{PhaseIDs: make([]string, 0, len(plan.Phases))}
	for _, rec := range existing {
		if keep[rec.ID] {
			continue
		}
		if err := txPhases.Delete(ctx, rec.ID); err != nil {
			return nil, fmt.Errorf("deleting phase %s: %w", rec.ID, err)
		}
		result.Deleted++
	}

	for i, p := range plan.Phases {
		rec := &domain.PhaseRecord{ExportedPhase: p, CampaignID: plan.CampaignID, UpdatedAt: now}
		rec.Position = i

		if prev := byID[p.ID]; p.ID != "" && prev != nil {
			rec.CreatedAt = prev.CreatedAt
			if err := txPhases.Update(ctx, rec); err != nil {
				return nil, fmt.Errorf("updating phase %d: %w", i+1, err)
			}
			result.Updated++
		} else {
			rec.ID = uuid.New().String()
			rec.CreatedAt = now
			if err := txPhases.Create(ctx, rec); err != nil {
				return nil, fmt.Errorf("creating phase %d: %w", i+1, err)
			}
			result.Created++
		}
		result.PhaseIDs = append(result.PhaseIDs, rec.ID)
	}
	return result, nil
}
