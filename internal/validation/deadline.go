package validation

import (
	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// Deadlines checks that every scheduled submission with a declared venue
// deadline ends on or before it.
func Deadlines(schedule *domain.Schedule, cfg *config.Config) *Result {
	result := newResult()
	compliant := 0
	checked := 0

	for _, id := range schedule.IDs() {
		sub, ok := cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		deadline, ok := cfg.DeadlineFor(sub)
		if !ok {
			continue
		}
		checked++
		iv, _ := schedule.Interval(id)
		if iv.EndDate.After(deadline) {
			result.add(DeadlineViolation{
				SubmissionID: id,
				End:          iv.EndDate,
				Deadline:     deadline,
				DaysLate:     dates.DaysBetween(deadline, iv.EndDate),
			})
			continue
		}
		compliant++
	}

	result.Metadata["total_submissions"] = schedule.Len()
	result.Metadata["checked_submissions"] = checked
	if checked > 0 {
		result.Metadata["compliance_rate"] = float64(compliant) / float64(checked)
	} else {
		result.Metadata["compliance_rate"] = 1.0
	}
	return result
}
