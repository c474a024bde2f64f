package validation

import (
	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// Schedule runs all four constraint validators and aggregates their
// violations into one result. Metadata carries the composite rates consumed
// by the quality scorer.
func Schedule(schedule *domain.Schedule, cfg *config.Config) *Result {
	deadline := Deadlines(schedule, cfg)
	deps := Dependencies(schedule, cfg)
	resources := Resources(schedule, cfg)
	blackout := Blackouts(schedule, cfg)

	result := newResult()
	for _, sub := range []*Result{deadline, deps, resources, blackout} {
		result.Violations = append(result.Violations, sub.Violations...)
	}
	result.IsValid = len(result.Violations) == 0

	result.Metadata["total_submissions"] = schedule.Len()
	result.Metadata["compliance_rate"] = deadline.Metadata["compliance_rate"]
	result.Metadata["utilization_rate"] = resources.Metadata["utilization_rate"]
	result.Metadata["max_observed"] = resources.Metadata["max_observed"]
	result.Metadata["blackout_compliance_rate"] = blackout.Metadata["compliance_rate"]
	result.Metadata["compatibility_rate"] = compatibilityRate(schedule, cfg)
	return result
}

// compatibilityRate is the fraction of scheduled submissions whose kind is
// accepted by their target conference. Submissions without a venue count as
// compatible.
func compatibilityRate(schedule *domain.Schedule, cfg *config.Config) float64 {
	if schedule.Len() == 0 {
		return 1.0
	}
	compatible := 0
	for _, id := range schedule.IDs() {
		sub, ok := cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		conf, ok := cfg.ConferenceFor(sub)
		if !ok {
			compatible++
			continue
		}
		if conf.Accepts(sub.Kind) {
			compatible++
		}
	}
	return float64(compatible) / float64(schedule.Len())
}

// CountByCode tallies violations per code for score computation.
func CountByCode(violations []Violation) map[string]int {
	counts := make(map[string]int)
	for _, v := range violations {
		counts[v.Code()]++
	}
	return counts
}
