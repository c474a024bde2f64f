package sched

import (
	"testing"
	"time"

	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/scoring"
	"github.com/alexanderramin/paperplan/internal/testutil"
	"github.com/alexanderramin/paperplan/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimal_EmptyConfig(t *testing.T) {
	cfg := testutil.NewConfig().Build()
	s, err := NewOptimal(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)
	assert.True(t, result.Complete)
	assert.Equal(t, 0, result.Schedule.Len())
}

func TestOptimal_SolverAbsentReturnsEmptySchedule(t *testing.T) {
	var warnings []string
	opts := testOptions()
	opts.DisableSolver = true
	opts.Warn = func(format string, args ...any) { warnings = append(warnings, format) }

	cfg := testutil.NewConfig().PaperLeadTime(10).Submission("p1", domain.KindPaper).Build()
	s, err := NewOptimal(cfg, opts)
	require.NoError(t, err)

	result := mustSchedule(t, s)
	assert.Equal(t, 0, result.Schedule.Len())
	assert.False(t, result.Complete)
	assert.Equal(t, []string{"p1"}, result.Unplaced)
	assert.NotEmpty(t, warnings, "degradation is logged, not an error")
}

func TestOptimal_RespectsAllConstraints(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(20).
		MaxConcurrent(1).
		Conference("conf", domain.ConferenceEngineering,
			map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(120)}).
		Submission("p1", domain.KindPaper, testutil.At("conf")).
		Submission("p2", domain.KindPaper, testutil.At("conf"), testutil.DependsOn("p1"), testutil.LeadTime(3)).
		Build()

	opts := testOptions()
	opts.TimeLimit = 10 * time.Second
	s, err := NewOptimal(cfg, opts)
	require.NoError(t, err)
	result := mustSchedule(t, s)

	require.True(t, result.Complete)
	check := validation.Schedule(result.Schedule, cfg)
	assert.True(t, check.IsValid, "optimal output passes the composite validator: %v", check.Violations)
}

// Two papers with interlocking deadlines: greedy's weighting misses one
// deadline, the MILP strategy meets all of them.
func TestOptimal_BeatsGreedyOnWeightTrap(t *testing.T) {
	cfg := weightTrap().Build()

	greedy, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	greedyResult := mustSchedule(t, greedy)
	greedyCheck := validation.Deadlines(greedyResult.Schedule, cfg)
	require.False(t, greedyCheck.IsValid, "the trap must catch greedy")

	opts := testOptions()
	opts.TimeLimit = 10 * time.Second
	optimal, err := NewOptimal(cfg, opts)
	require.NoError(t, err)
	optimalResult := mustSchedule(t, optimal)

	require.True(t, optimalResult.Complete)
	optimalCheck := validation.Deadlines(optimalResult.Schedule, cfg)
	assert.True(t, optimalCheck.IsValid, "optimal meets every deadline")

	qOptimal := scoring.Quality(optimalResult.Schedule, cfg)
	qGreedy := scoring.Quality(greedyResult.Schedule, cfg)
	assert.Greater(t, qOptimal, qGreedy)
}

func TestOptimal_InfeasibleDeadlineDegradesGracefully(t *testing.T) {
	var warnings []string
	opts := testOptions()
	opts.TimeLimit = 5 * time.Second
	opts.Warn = func(format string, args ...any) { warnings = append(warnings, format) }

	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		Conference("conf", domain.ConferenceEngineering,
			map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(10)}).
		Submission("p1", domain.KindPaper, testutil.At("conf")).
		Build()

	s, err := NewOptimal(cfg, opts)
	require.NoError(t, err)
	result := mustSchedule(t, s)

	assert.Equal(t, 0, result.Schedule.Len())
	assert.False(t, result.Complete)
	assert.NotEmpty(t, warnings)
}
