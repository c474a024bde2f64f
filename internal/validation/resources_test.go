package validation

import (
	"testing"

	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threePapers() *testutil.ConfigBuilder {
	return testutil.NewConfig().
		PaperLeadTime(30).
		MaxConcurrent(2).
		Submission("pa", domain.KindPaper).
		Submission("pb", domain.KindPaper).
		Submission("pc", domain.KindPaper)
}

func TestResources_EmptySchedule(t *testing.T) {
	cfg := threePapers().Build()
	result := Resources(domain.NewSchedule(), cfg)
	assert.True(t, result.IsValid)
	assert.Equal(t, 0, result.Metadata["max_observed"])
}

func TestResources_WithinLimit(t *testing.T) {
	cfg := threePapers().Build()
	schedule := domain.NewSchedule()
	schedule.Add("pa", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("pb", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("pc", domain.NewInterval(testutil.Day(30), 30))

	result := Resources(schedule, cfg)
	assert.True(t, result.IsValid)
	assert.Equal(t, 2, result.Metadata["max_observed"], "max_observed reported even when valid")
}

func TestResources_OverLimit(t *testing.T) {
	cfg := threePapers().Build()
	schedule := domain.NewSchedule()
	schedule.Add("pa", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("pb", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("pc", domain.NewInterval(testutil.Day(0), 30))

	result := Resources(schedule, cfg)
	assert.False(t, result.IsValid)
	assert.Equal(t, 3, result.Metadata["max_observed"])
	assert.Len(t, result.Violations, 30, "every overloaded day is flagged")

	v, ok := result.Violations[0].(ResourceViolation)
	require.True(t, ok)
	assert.Equal(t, testutil.Day(0), v.Day)
	assert.Equal(t, 3, v.Load)
	assert.Equal(t, 2, v.Limit)
}

func TestDailyLoad_HalfOpenIntervals(t *testing.T) {
	cfg := threePapers().Build()
	schedule := domain.NewSchedule()
	schedule.Add("pa", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("pb", domain.NewInterval(testutil.Day(30), 30))

	load := DailyLoad(schedule, cfg)
	assert.Equal(t, 1, load[testutil.Day(0)])
	assert.Equal(t, 1, load[testutil.Day(29)])
	assert.Equal(t, 1, load[testutil.Day(30)], "back-to-back intervals do not stack")
	assert.Equal(t, 1, load[testutil.Day(59)])
	_, covered := load[testutil.Day(60)]
	assert.False(t, covered)
}
