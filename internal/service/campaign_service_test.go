package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaign(shortID string) *domain.Campaign {
	return &domain.Campaign{
		ShortID:          shortID,
		Title:            "Winter Soup",
		TargetAmount:     1_000_000,
		FundraisingStart: testutil.Day(today(), 2, 9, 0),
		FundraisingEnd:   testutil.Day(today(), 9, 18, 0),
	}
}

func TestCampaignService_Create(t *testing.T) {
	env := setupEnv(t)
	obs := &recordingObserver{}
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours, obs)
	ctx := context.Background()

	c := newCampaign("SOUP01")
	c.FundraisingStart = c.FundraisingStart[:10] + " 09:00:00+02:00"
	require.NoError(t, svc.Create(ctx, c))

	assert.NotEmpty(t, c.ID, "UUID should be generated")
	assert.Equal(t, domain.CampaignDraft, c.Status, "status should default to draft")
	assert.Equal(t, testutil.Day(today(), 2, 9, 0), c.FundraisingStart, "window stored in canonical form")

	fetched, err := svc.GetByShortID(ctx, "soup01")
	require.NoError(t, err)
	assert.Equal(t, c.ID, fetched.ID)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "create-campaign", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, c.ID, obs.events[0].Fields["campaign_id"])
}

func TestCampaignService_Create_InvalidShortID(t *testing.T) {
	env := setupEnv(t)
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours)

	tests := []struct {
		name    string
		shortID string
	}{
		{"empty", ""},
		{"lowercase", "soup01"},
		{"no digits", "SOUPS"},
		{"too short letters", "SO01"},
		{"too long letters", "SOUPKITCH01"},
		{"special chars", "SO!01"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, svc.Create(context.Background(), newCampaign(tc.shortID)))
		})
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCampaignService_Create_StartTodayBlocked(t *testing.T) {
	env := setupEnv(t)
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours)

	c := newCampaign("SOUP02")
	c.FundraisingStart = testutil.Day(today(), 0, 23, 59)

	err := svc.Create(context.Background(), c)
	var blockedErr *SaveBlockedError
	require.ErrorAs(t, err, &blockedErr)
	assert.Equal(t, []string{"Fundraising start date must be a future date"}, blockedErr.Messages())
}

func TestCampaignService_Create_UnparseableWindow(t *testing.T) {
	env := setupEnv(t)
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours)

	c := newCampaign("SOUP03")
	c.FundraisingEnd = "soon"
	err := svc.Create(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `fundraising end "soon"`)
}

func TestCampaignService_UpdateWindow_ChecksPersistedPhases(t *testing.T) {
	env := setupEnv(t)
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours)
	ctx := context.Background()

	c := env.seedCampaign(t)
	session, err := env.editor().Begin(ctx, c.ID)
	require.NoError(t, err)
	fillPhase(t, session, 0, testutil.NewTestPhase("Week one", 4, testutil.WithShares("50", "25", "25")))
	_, err = session.Save(ctx, today())
	require.NoError(t, err)

	late := domain.FundingWindow{Start: testutil.Day(today(), 1, 0, 0), End: testutil.Day(today(), 4, 8, 0)}
	err = svc.UpdateWindow(ctx, c.ID, late)
	var blockedErr *SaveBlockedError
	require.ErrorAs(t, err, &blockedErr)
	assert.Equal(t, []string{"Phase 1 must start after funding ends"}, blockedErr.Messages())

	ok := domain.FundingWindow{Start: testutil.Day(today(), 1, 0, 0), End: testutil.Day(today(), 4, 7, 59)}
	require.NoError(t, svc.UpdateWindow(ctx, c.ID, ok))

	fetched, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, ok, fetched.Window())
}

func TestCampaignService_UpdateWindow_NotFound(t *testing.T) {
	env := setupEnv(t)
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours)

	w := domain.FundingWindow{Start: testutil.Day(today(), 1, 0, 0), End: testutil.Day(today(), 2, 0, 0)}
	err := svc.UpdateWindow(context.Background(), "missing", w)
	assert.True(t, errors.Is(err, domain.ErrCampaignNotFound))
}

func TestCampaignService_DeleteRemovesPhases(t *testing.T) {
	env := setupEnv(t)
	svc := NewCampaignService(env.campaigns, env.phases, domain.ExportOffsetHours)
	ctx := context.Background()

	c := env.seedCampaign(t)
	require.NoError(t, env.phases.Create(ctx, testutil.NewTestPhaseRecord(c.ID, 0, "Week one")))

	require.NoError(t, svc.Delete(ctx, c.ID))

	_, err := svc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
	remaining, err := env.phases.ListByCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
