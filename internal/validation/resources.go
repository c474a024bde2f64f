package validation

import (
	"sort"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// DailyLoad builds the day-to-concurrent-count histogram over the half-open
// span [min start, max end) of the schedule.
func DailyLoad(schedule *domain.Schedule, cfg *config.Config) map[time.Time]int {
	load := make(map[time.Time]int)
	for _, id := range schedule.IDs() {
		iv, _ := schedule.Interval(id)
		for day := iv.StartDate; day.Before(iv.EndDate); day = day.AddDate(0, 0, 1) {
			load[day]++
		}
	}
	return load
}

// Resources checks the per-day concurrency cap. max_observed is reported in
// metadata even when the schedule is valid.
func Resources(schedule *domain.Schedule, cfg *config.Config) *Result {
	result := newResult()
	load := DailyLoad(schedule, cfg)

	days := make([]time.Time, 0, len(load))
	for day := range load {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	maxObserved := 0
	total := 0
	limit := cfg.MaxConcurrentSubmissions
	for _, day := range days {
		n := load[day]
		total += n
		if n > maxObserved {
			maxObserved = n
		}
		if n > limit {
			result.add(ResourceViolation{Day: day, Load: n, Limit: limit})
		}
	}

	result.Metadata["total_submissions"] = schedule.Len()
	result.Metadata["max_observed"] = maxObserved
	if len(days) > 0 && limit > 0 {
		avg := float64(total) / float64(len(days))
		result.Metadata["avg_daily_load"] = avg
		result.Metadata["utilization_rate"] = avg / float64(limit)
	} else {
		result.Metadata["avg_daily_load"] = 0.0
		result.Metadata["utilization_rate"] = 0.0
	}
	return result
}
