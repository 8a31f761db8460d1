package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/mealfund/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_CampaignToPhases verifies that deleting a campaign
// removes its phases and leaves other campaigns' phases alone.
func TestCascadeDelete_CampaignToPhases(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	campaigns := NewSQLiteCampaignRepo(db)
	phases := NewSQLitePhaseRepo(db)

	doomed := seedCampaign(t, campaigns)
	kept := seedCampaign(t, campaigns)

	doomedPhase := testutil.NewTestPhaseRecord(doomed.ID, 0, "Week one")
	keptPhase := testutil.NewTestPhaseRecord(kept.ID, 0, "Week one")
	require.NoError(t, phases.Create(ctx, doomedPhase))
	require.NoError(t, phases.Create(ctx, keptPhase))

	require.NoError(t, campaigns.Delete(ctx, doomed.ID))

	_, err := phases.GetByID(ctx, doomedPhase.ID)
	assert.Error(t, err, "phase should be cascade-deleted with its campaign")

	got, err := phases.GetByID(ctx, keptPhase.ID)
	require.NoError(t, err)
	assert.Equal(t, kept.ID, got.CampaignID)
}

// TestForeignKey_PhaseRequiresCampaign verifies the FK on campaign_phases.campaign_id.
func TestForeignKey_PhaseRequiresCampaign(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	phases := NewSQLitePhaseRepo(db)

	rec := testutil.NewTestPhaseRecord("nonexistent-campaign", 0, "Orphan phase")
	err := phases.Create(ctx, rec)
	assert.Error(t, err, "creating phase with nonexistent campaign should fail FK constraint")
}

// TestForeignKey_FileBackedDBEnforcesOnEveryConnection opens a pooled
// file database and checks the FK holds regardless of which connection
// serves the insert.
func TestForeignKey_FileBackedDBEnforcesOnEveryConnection(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	database.SetMaxOpenConns(4)

	phases := NewSQLitePhaseRepo(database)
	for i := 0; i < 8; i++ {
		rec := testutil.NewTestPhaseRecord("nonexistent-campaign", i, "Orphan phase")
		assert.Error(t, phases.Create(ctx, rec))
	}
}
