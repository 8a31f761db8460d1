package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() (time.Time, func() time.Time) {
	at := time.Now().Add(-36 * time.Hour).UTC().Truncate(time.Second)
	return at, func() time.Time { return at }
}

func TestCampaignService_CreateStampsInjectedClock(t *testing.T) {
	env := setupEnv(t)
	at, clock := fixedClock()
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours).(*campaignService)
	svc.now = clock
	ctx := context.Background()

	c := newCampaign("SOUP01")
	require.NoError(t, svc.Create(ctx, c))
	assert.Equal(t, at, c.CreatedAt)

	fetched, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, at.Equal(fetched.CreatedAt))
	assert.True(t, at.Equal(fetched.UpdatedAt))
}

func TestPhaseSyncer_StampsInjectedClock(t *testing.T) {
	env := setupEnv(t)
	at, clock := fixedClock()
	syncer := &sqlitePhaseSyncer{uow: env.uow, now: clock}
	editor := NewPhaseEditService(env.campaigns, env.phases, syncer, domain.ExportOffsetHours)
	ctx := context.Background()
	c := env.seedCampaign(t)

	session, err := editor.Begin(ctx, c.ID)
	require.NoError(t, err)
	fillPhase(t, session, 0, testutil.NewTestPhase("Week one", 4))
	_, err = session.Save(ctx, today())
	require.NoError(t, err)

	stored, err := env.phases.ListByCampaign(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, at.Equal(stored[0].CreatedAt))
	assert.True(t, at.Equal(stored[0].UpdatedAt))
}
