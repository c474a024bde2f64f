package sched

import (
	"testing"
	"time"

	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/testutil"
	"github.com/alexanderramin/paperplan/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedy_SingleIndependentPaper(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		MaxConcurrent(1).
		Conference("conf", domain.ConferenceEngineering,
			map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(180)}).
		Submission("p1", domain.KindPaper, testutil.At("conf")).
		Build()

	s, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)

	require.True(t, result.Complete)
	iv, ok := result.Schedule.Interval("p1")
	require.True(t, ok)
	assert.Equal(t, testutil.Today, iv.StartDate)
	assert.Equal(t, testutil.Day(30), iv.EndDate)

	check := validation.Schedule(result.Schedule, cfg)
	assert.True(t, check.IsValid)
	assert.Equal(t, 1.0, check.Metadata["compliance_rate"])
}

func TestGreedy_LinearChain(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		Submission("p1", domain.KindPaper).
		Submission("p2", domain.KindPaper, testutil.DependsOn("p1")).
		Build()

	s, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)

	require.True(t, result.Complete)
	p1, _ := result.Schedule.Interval("p1")
	p2, _ := result.Schedule.Interval("p2")
	assert.Equal(t, testutil.Today, p1.StartDate)
	assert.Equal(t, p1.StartDate.AddDate(0, 0, 30), p2.StartDate)
	assert.Equal(t, 60, result.Schedule.DurationDays())
}

func TestGreedy_ConcurrencyCap(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		MaxConcurrent(2).
		Submission("pa", domain.KindPaper).
		Submission("pb", domain.KindPaper).
		Submission("pc", domain.KindPaper).
		Build()

	s, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)

	require.True(t, result.Complete)
	starts := result.Schedule.StartMap()
	onToday := 0
	for _, start := range starts {
		if start.Equal(testutil.Today) {
			onToday++
		}
	}
	assert.Equal(t, 2, onToday, "exactly two start on day one")
	assert.Equal(t, testutil.Day(30), starts["pc"], "lexicographically last starts after a slot frees")
}

func TestGreedy_BlackoutTodayStartsNextWorkingDay(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		Blackout(testutil.Today).
		Submission("p1", domain.KindPaper).
		Build()

	s, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)

	iv, ok := result.Schedule.Interval("p1")
	require.True(t, ok)
	assert.Equal(t, testutil.Day(1), iv.StartDate)

	check := validation.Blackouts(result.Schedule, cfg)
	assert.True(t, check.IsValid)
}

func TestGreedy_UrgentDeadlineFirst(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		MaxConcurrent(1).
		Conference("near", domain.ConferenceEngineering,
			map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(40)}).
		Conference("far", domain.ConferenceEngineering,
			map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(200)}).
		Submission("a-far", domain.KindPaper, testutil.At("far")).
		Submission("b-near", domain.KindPaper, testutil.At("near")).
		Build()

	s, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)

	starts := result.Schedule.StartMap()
	assert.Equal(t, testutil.Today, starts["b-near"], "tighter deadline wins despite id order")
	assert.Equal(t, testutil.Day(30), starts["a-far"])
}

// Raising the engineering-paper weight must never delay an engineering
// paper, all else equal.
func TestGreedy_WeightMonotonicity(t *testing.T) {
	build := func(weight float64) *testutil.ConfigBuilder {
		return testutil.NewConfig().
			PaperLeadTime(30).
			MaxConcurrent(1).
			Weight(domain.PriorityEngineeringPaper, weight).
			Conference("eng", domain.ConferenceEngineering,
				map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(150)}).
			Conference("med", domain.ConferenceMedical,
				map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(120)}).
			Submission("e1", domain.KindPaper, testutil.At("eng"), testutil.Engineering()).
			Submission("m1", domain.KindPaper, testutil.At("med"))
	}

	startOf := func(weight float64) time.Time {
		s, err := NewGreedy(build(weight).Build(), testOptions())
		require.NoError(t, err)
		result := mustSchedule(t, s)
		start, ok := result.Schedule.StartDate("e1")
		require.True(t, ok)
		return start
	}

	low := startOf(0.5)
	high := startOf(5.0)
	assert.False(t, high.After(low), "higher weight must not schedule the engineering paper later")
}

func TestGreedy_DeterministicTieBreakByID(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		MaxConcurrent(1).
		Submission("b", domain.KindPaper).
		Submission("a", domain.KindPaper).
		Build()

	s, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)

	starts := result.Schedule.StartMap()
	assert.True(t, starts["a"].Before(starts["b"]), "equal priority falls back to id order")
}
