package validation

import (
	"testing"
	"time"

	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compositeConfig() *testutil.ConfigBuilder {
	return testutil.NewConfig().
		PaperLeadTime(30).
		MaxConcurrent(2).
		Conference("conf", domain.ConferenceEngineering,
			map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(120)}).
		Submission("p1", domain.KindPaper, testutil.At("conf")).
		Submission("p2", domain.KindPaper, testutil.DependsOn("p1"))
}

func TestSchedule_CompositeValid(t *testing.T) {
	cfg := compositeConfig().Build()
	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("p2", domain.NewInterval(testutil.Day(30), 30))

	result := Schedule(schedule, cfg)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)

	assert.Equal(t, 2, result.Metadata["total_submissions"])
	assert.Equal(t, 1.0, result.Metadata["compliance_rate"])
	assert.Equal(t, 1.0, result.Metadata["blackout_compliance_rate"])
	assert.Equal(t, 1.0, result.Metadata["compatibility_rate"])
	assert.Equal(t, 1, result.Metadata["max_observed"])
}

func TestSchedule_CompositeAggregatesViolations(t *testing.T) {
	cfg := compositeConfig().Build()
	schedule := domain.NewSchedule()
	// p2 before p1 finishes and p1 past its deadline.
	schedule.Add("p1", domain.NewInterval(testutil.Day(100), 30))
	schedule.Add("p2", domain.NewInterval(testutil.Day(100), 30))

	result := Schedule(schedule, cfg)
	assert.False(t, result.IsValid)

	counts := CountByCode(result.Violations)
	assert.Equal(t, 1, counts["deadline"], "p1 ends past day 120")
	assert.Equal(t, 1, counts["ordering"])
	assert.Equal(t, 0, counts["resource"], "two concurrent papers stay within the cap of 2")
}

func TestSchedule_CompatibilityRate(t *testing.T) {
	cfg := testutil.NewConfig().
		Conference("conf", domain.ConferenceEngineering,
			map[domain.SubmissionKind]time.Time{domain.KindPaper: testutil.Day(120)}).
		Submission("p1", domain.KindPaper, testutil.At("conf")).
		Submission("po1", domain.KindPoster, testutil.At("conf")).
		Build()

	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(0), 30))
	schedule.Add("po1", domain.NewInterval(testutil.Day(0), 7))

	result := Schedule(schedule, cfg)
	assert.Equal(t, 0.5, result.Metadata["compatibility_rate"], "poster kind not accepted at conf")
}

func TestSchedule_Idempotent(t *testing.T) {
	cfg := compositeConfig().Build()
	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(100), 30))
	schedule.Add("p2", domain.NewInterval(testutil.Day(100), 30))

	first := Schedule(schedule, cfg)
	second := Schedule(schedule, cfg)
	require.Equal(t, first, second, "validation must be idempotent")
}

func TestSubmissionAt(t *testing.T) {
	cfg := compositeConfig().Build()
	schedule := domain.NewSchedule()
	schedule.Add("p1", domain.NewInterval(testutil.Day(0), 30))

	p2, _ := cfg.SubmissionByID("p2")
	assert.True(t, SubmissionAt(p2, testutil.Day(30), schedule, cfg, testutil.Today))
	assert.False(t, SubmissionAt(p2, testutil.Day(20), schedule, cfg, testutil.Today), "parent still running")
	assert.False(t, SubmissionAt(p2, testutil.Day(31), schedule, cfg, testutil.Today), "Saturday start")

	p1, _ := cfg.SubmissionByID("p1")
	otherSchedule := domain.NewSchedule()
	assert.False(t, SubmissionAt(p1, testutil.Day(93), otherSchedule, cfg, testutil.Today),
		"would end past the deadline")
}
