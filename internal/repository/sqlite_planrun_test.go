package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(created time.Time) *PlanRun {
	seed := int64(42)
	quality := 91.5
	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("p2", domain.NewInterval(testutil.Day(30), 30))
	return &PlanRun{
		CreatedAt:        created,
		Strategy:         domain.StrategyStochastic,
		Heuristic:        "",
		Seed:             &seed,
		Today:            testutil.Today,
		TotalSubmissions: 2,
		DurationDays:     60,
		Complete:         false,
		Unplaced:         []string{"p3"},
		Schedule:         schedule,
		Quality:          &quality,
	}
}

func TestSQLitePlanRunRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLitePlanRunRepo(testutil.OpenTestDB(t))
	ctx := context.Background()

	run := sampleRun(time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, run))
	require.NotEmpty(t, run.ID, "Create assigns an id")

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyStochastic, got.Strategy)
	require.NotNil(t, got.Seed)
	assert.Equal(t, int64(42), *got.Seed)
	assert.Equal(t, testutil.Today, got.Today)
	assert.Equal(t, 60, got.DurationDays)
	assert.False(t, got.Complete)
	assert.Equal(t, []string{"p3"}, got.Unplaced)
	assert.True(t, run.Schedule.Equal(got.Schedule))
	require.NotNil(t, got.Quality)
	assert.Equal(t, 91.5, *got.Quality)
	assert.Nil(t, got.Efficiency)
}

func TestSQLitePlanRunRepo_GetMissing(t *testing.T) {
	repo := NewSQLitePlanRunRepo(testutil.OpenTestDB(t))
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLitePlanRunRepo_ListRecentNewestFirst(t *testing.T) {
	repo := NewSQLitePlanRunRepo(testutil.OpenTestDB(t))
	ctx := context.Background()

	old := sampleRun(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	mid := sampleRun(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	recent := sampleRun(time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC))
	for _, run := range []*PlanRun{old, mid, recent} {
		require.NoError(t, repo.Create(ctx, run))
	}

	runs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, recent.ID, runs[0].ID)
	assert.Equal(t, mid.ID, runs[1].ID)
}

func TestSQLitePlanRunRepo_Delete(t *testing.T) {
	repo := NewSQLitePlanRunRepo(testutil.OpenTestDB(t))
	ctx := context.Background()

	run := sampleRun(time.Now().UTC())
	require.NoError(t, repo.Create(ctx, run))
	require.NoError(t, repo.Delete(ctx, run.ID))

	_, err := repo.GetByID(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, run.ID), ErrNotFound)
}
