package validation

import (
	"testing"

	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlackouts_NoBlackoutDates(t *testing.T) {
	cfg := testutil.NewConfig().Submission("p1", domain.KindPaper).Build()
	result := Blackouts(domain.NewSchedule(), cfg)
	assert.True(t, result.IsValid)
	assert.Equal(t, 0, result.Metadata["total_submissions"])
	assert.Equal(t, 1.0, result.Metadata["compliance_rate"])
}

func TestBlackouts_StartOnBlackoutDay(t *testing.T) {
	cfg := testutil.NewConfig().
		Blackout(testutil.Day(0)).
		Submission("p1", domain.KindPaper).
		Build()

	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(0), 30))

	result := Blackouts(schedule, cfg)
	assert.False(t, result.IsValid)
	require.Len(t, result.Violations, 1)
	v, ok := result.Violations[0].(BlackoutViolation)
	require.True(t, ok)
	assert.Equal(t, "p1", v.SubmissionID)
	assert.Equal(t, testutil.Day(0), v.Day)
}

func TestBlackouts_StartOnWeekend(t *testing.T) {
	cfg := testutil.NewConfig().Submission("p1", domain.KindPaper).Build()

	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(3), 30)) // Saturday

	result := Blackouts(schedule, cfg)
	assert.False(t, result.IsValid)
}

func TestBlackouts_SpanningIsAllowed(t *testing.T) {
	cfg := testutil.NewConfig().
		Blackout(testutil.Day(10)).
		Submission("p1", domain.KindPaper).
		Build()

	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(0), 30))

	result := Blackouts(schedule, cfg)
	assert.True(t, result.IsValid, "interior blackout coverage is allowed")
	_, reported := result.Metadata["spanning_submissions"]
	assert.False(t, reported, "spanning metadata only appears when the option is on")
}

func TestBlackouts_SpanningReportedWhenOptionEnabled(t *testing.T) {
	cfg := testutil.NewConfig().
		Blackout(testutil.Day(10)).
		Options(false, 30, true).
		Submission("p1", domain.KindPaper).
		Build()

	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(0), 30))

	result := Blackouts(schedule, cfg)
	assert.True(t, result.IsValid)
	assert.Equal(t, []string{"p1"}, result.Metadata["spanning_submissions"])
}
