package validation

import (
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// SubmissionAt reports whether placing sub at start keeps the schedule
// consistent: working-day start, per-item readiness, dependency lead times,
// venue deadline, and the concurrency cap across the candidate interval.
// Schedulers use it for speculative placement (early abstracts, lookahead
// deferral, backtracking).
func SubmissionAt(sub *domain.Submission, start time.Time, schedule *domain.Schedule, cfg *config.Config, today time.Time) bool {
	if !dates.IsWorkingDay(start, cfg.BlackoutDates) {
		return false
	}
	if start.Before(today) {
		return false
	}
	if sub.EarliestStartDate != nil && start.Before(*sub.EarliestStartDate) {
		return false
	}
	if sub.EngineeringReadyDate != nil && start.Before(*sub.EngineeringReadyDate) {
		return false
	}

	duration := sub.DurationDays(cfg.LeadTimes())
	candidate := domain.NewInterval(start, duration)

	if deadline, ok := cfg.DeadlineFor(sub); ok && candidate.EndDate.After(deadline) {
		return false
	}

	for _, depID := range sub.DependsOn {
		parentIv, ok := schedule.Interval(depID)
		if !ok {
			return false
		}
		required := parentIv.EndDate.AddDate(0, 0, sub.LeadTimeFromParents)
		if start.Before(required) {
			return false
		}
	}

	for day := candidate.StartDate; day.Before(candidate.EndDate); day = day.AddDate(0, 0, 1) {
		active := 0
		for _, id := range schedule.IDs() {
			iv, _ := schedule.Interval(id)
			if iv.Contains(day) {
				active++
			}
		}
		if active+1 > cfg.MaxConcurrentSubmissions {
			return false
		}
	}

	return true
}
