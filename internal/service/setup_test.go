package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/mealfund/internal/db"
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/repository"
	"github.com/alexanderramin/mealfund/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db        *sql.DB
	campaigns repository.CampaignRepo
	phases    repository.PhaseRepo
	uow       db.UnitOfWork
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:        database,
		campaigns: repository.NewSQLiteCampaignRepo(database),
		phases:    repository.NewSQLitePhaseRepo(database),
		uow:       testutil.NewTestUoW(database),
	}
}

func (e *testEnv) editor(observers ...UseCaseObserver) PhaseEditService {
	return NewPhaseEditService(e.campaigns, e.phases, NewSQLitePhaseSyncer(e.uow), domain.ExportOffsetHours, observers...)
}

// seedCampaign stores a campaign funding from tomorrow to today+3.
func (e *testEnv) seedCampaign(t *testing.T, opts ...testutil.CampaignOption) *domain.Campaign {
	t.Helper()
	c := testutil.NewTestCampaign("Soup Kitchen", opts...)
	require.NoError(t, e.campaigns.Create(context.Background(), c))
	return c
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

func today() time.Time {
	return time.Now()
}
