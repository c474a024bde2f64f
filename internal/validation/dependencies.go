package validation

import (
	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// Dependencies checks every dependency edge of scheduled submissions:
// unknown ids are rejected, parents must be scheduled, and children must
// start no earlier than each parent's end plus the child's lead time.
func Dependencies(schedule *domain.Schedule, cfg *config.Config) *Result {
	result := newResult()
	satisfied := 0
	edges := 0

	for _, id := range schedule.IDs() {
		sub, ok := cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		iv, _ := schedule.Interval(id)
		for _, depID := range sub.DependsOn {
			edges++
			parent, ok := cfg.SubmissionByID(depID)
			if !ok {
				result.add(UnknownDependencyViolation{SubmissionID: id, DependencyID: depID})
				continue
			}
			parentIv, ok := schedule.Interval(parent.ID)
			if !ok {
				result.add(MissingParentViolation{SubmissionID: id, DependencyID: depID})
				continue
			}
			required := parentIv.EndDate.AddDate(0, 0, sub.LeadTimeFromParents)
			if iv.StartDate.Before(required) {
				result.add(OrderingViolation{
					SubmissionID:  id,
					DependencyID:  depID,
					Start:         iv.StartDate,
					RequiredStart: required,
				})
				continue
			}
			satisfied++
		}
	}

	result.Metadata["total_submissions"] = schedule.Len()
	result.Metadata["dependency_edges"] = edges
	if edges > 0 {
		result.Metadata["satisfaction_rate"] = float64(satisfied) / float64(edges)
	} else {
		result.Metadata["satisfaction_rate"] = 1.0
	}
	return result
}
