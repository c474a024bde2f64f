package sched

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomConfig generates an acyclic planning problem: dependencies only
// point at earlier submissions, deadlines are generous enough to keep most
// instances feasible.
func randomConfig(rng *rand.Rand) *testutil.ConfigBuilder {
	b := testutil.NewConfig().
		PaperLeadTime(rng.Intn(20) + 5).
		AbstractLeadTime(rng.Intn(5) + 2).
		MaxConcurrent(rng.Intn(3) + 1)

	b.Conference("conf", domain.ConferenceEngineering, map[domain.SubmissionKind]time.Time{
		domain.KindPaper:    testutil.Day(rng.Intn(200) + 200),
		domain.KindAbstract: testutil.Day(rng.Intn(100) + 100),
	})

	n := rng.Intn(6) + 2
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("s%02d", i)
		kind := domain.KindPaper
		if rng.Intn(3) == 0 {
			kind = domain.KindAbstract
		}

		var opts []testutil.SubmissionOption
		if rng.Intn(2) == 0 {
			opts = append(opts, testutil.At("conf"))
		}
		if i > 0 && rng.Intn(2) == 0 {
			parent := ids[rng.Intn(i)]
			opts = append(opts, testutil.DependsOn(parent), testutil.LeadTime(rng.Intn(5)))
		}
		b.Submission(ids[i], kind, opts...)
	}
	return b
}

// TestStrategies_PlacementInvariants property-tests the shared loop across
// strategies: working-day starts, dependency ordering with lead times, and
// the concurrency cap hold for every placement.
func TestStrategies_PlacementInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	factories := map[string]Factory{
		"greedy":       NewGreedy,
		"random":       NewRandom,
		"heuristic":    NewHeuristic,
		"stochastic":   NewStochastic,
		"lookahead":    NewLookahead,
		"backtracking": NewBacktracking,
	}

	for trial := 0; trial < 40; trial++ {
		cfg := randomConfig(rng).Build()
		seed := rng.Int63()

		for name, factory := range factories {
			opts := testOptions()
			opts.Seed = &seed

			s, err := factory(cfg, opts)
			require.NoError(t, err)
			result, err := s.Schedule(context.Background())
			require.NoError(t, err, "trial %d strategy %s", trial, name)

			schedule := result.Schedule
			for _, id := range schedule.IDs() {
				iv, _ := schedule.Interval(id)
				assert.True(t, dates.IsWorkingDay(iv.StartDate, cfg.BlackoutDates),
					"trial %d %s: %s starts on a non-working day", trial, name, id)

				sub, _ := cfg.SubmissionByID(id)
				for _, depID := range sub.DependsOn {
					parentIv, ok := schedule.Interval(depID)
					if !ok {
						continue // parent unplaced means the child's edge is reported by the validator
					}
					required := parentIv.EndDate.AddDate(0, 0, sub.LeadTimeFromParents)
					assert.False(t, iv.StartDate.Before(required),
						"trial %d %s: %s starts before %s finishes plus lead", trial, name, id, depID)
				}
			}

			start, end, ok := schedule.Span()
			if !ok {
				continue
			}
			for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
				active := 0
				for _, id := range schedule.IDs() {
					if iv, _ := schedule.Interval(id); iv.Contains(day) {
						active++
					}
				}
				assert.LessOrEqual(t, active, cfg.MaxConcurrentSubmissions,
					"trial %d %s: concurrency cap breached on %s", trial, name, day.Format(dates.Layout))
			}
		}
	}
}

// Children placed by the shared loop always come after scheduled parents,
// so a partial schedule never contains an orphan that violates ordering.
func TestStrategies_PartialSchedulesConsistent(t *testing.T) {
	cfg := testutil.NewConfig().
		PaperLeadTime(30).
		MaxConcurrent(1).
		Submission("p1", domain.KindPaper, testutil.NotBefore(testutil.Day(2000))).
		Submission("p2", domain.KindPaper, testutil.DependsOn("p1")).
		Build()

	s, err := NewGreedy(cfg, testOptions())
	require.NoError(t, err)
	result := mustSchedule(t, s)

	assert.False(t, result.Complete)
	assert.ElementsMatch(t, []string{"p1", "p2"}, result.Unplaced,
		"a child never appears without its parent")
}
