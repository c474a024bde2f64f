package validation

import (
	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// Blackouts checks that no interval starts on a blackout or weekend day.
// Intervals spanning blackout days without starting on one are allowed;
// when the blackout-periods option is enabled they are listed in metadata
// as informational only.
func Blackouts(schedule *domain.Schedule, cfg *config.Config) *Result {
	result := newResult()
	compliant := 0
	var spanning []string

	for _, id := range schedule.IDs() {
		iv, _ := schedule.Interval(id)
		if !dates.IsWorkingDay(iv.StartDate, cfg.BlackoutDates) {
			result.add(BlackoutViolation{SubmissionID: id, Day: iv.StartDate})
			continue
		}
		compliant++
		if cfg.Options.EnableBlackoutPeriods && spansBlackout(iv, cfg.BlackoutDates) {
			spanning = append(spanning, id)
		}
	}

	result.Metadata["total_submissions"] = schedule.Len()
	if schedule.Len() > 0 {
		result.Metadata["compliance_rate"] = float64(compliant) / float64(schedule.Len())
	} else {
		result.Metadata["compliance_rate"] = 1.0
	}
	if cfg.Options.EnableBlackoutPeriods {
		result.Metadata["spanning_submissions"] = spanning
	}
	return result
}

func spansBlackout(iv domain.Interval, blackouts dates.Set) bool {
	for day := iv.StartDate.AddDate(0, 0, 1); day.Before(iv.EndDate); day = day.AddDate(0, 0, 1) {
		if blackouts.Has(day) {
			return true
		}
	}
	return false
}
