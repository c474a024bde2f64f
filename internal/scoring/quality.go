// Package scoring computes the quality and efficiency scores of a schedule,
// each a scalar in [0, 100] with exported sub-metrics.
package scoring

import (
	"sort"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/validation"
)

// Quality scores deadline, dependency, and resource compliance, blended
// with metadata-driven factors from the composite validator. Empty
// schedules score 0.
func Quality(schedule *domain.Schedule, cfg *config.Config) float64 {
	maxScore := constants.Report.MaxScore
	minScore := constants.Report.MinScore

	if schedule.Len() == 0 {
		return minScore
	}

	composite := validation.Schedule(schedule, cfg)
	counts := validation.CountByCode(composite.Violations)
	total := schedule.Len()

	deadlineScore := violationScore(counts["deadline"], total)
	dependencyScore := violationScore(counts["missing_parent"]+counts["ordering"]+counts["unknown_dependency"], total)
	resourceScore := violationScore(counts["resource"], total)

	base := deadlineScore*constants.Scoring.QualityDeadlineWeight +
		dependencyScore*constants.Scoring.QualityDependencyWeight +
		resourceScore*constants.Scoring.QualityResourceWeight

	factors := metadataFactors(composite.Metadata)
	score := base
	if len(factors) > 0 {
		sum := 0.0
		for _, f := range factors {
			sum += f
		}
		additional := sum / float64(len(factors)) * constants.Quality.PercentageMultiplier
		w := constants.Scoring.QualityMetadataWeight
		score = base*(1-w) + additional*w
	}

	return clamp(score, minScore, maxScore)
}

func violationScore(violations, total int) float64 {
	if total <= 0 {
		return constants.Report.MaxScore
	}
	score := constants.Report.MaxScore * (1 - float64(violations)/float64(total))
	return clamp(score, constants.Report.MinScore, constants.Report.MaxScore)
}

func metadataFactors(metadata map[string]any) []float64 {
	var factors []float64
	for _, key := range []string{"blackout_compliance_rate", "compatibility_rate", "utilization_rate"} {
		if v, ok := metadata[key].(float64); ok {
			factors = append(factors, v)
		}
	}
	return factors
}

// Robustness scores the mean inter-submission slack: schedules with
// breathing room between consecutive placements absorb disruption better.
// A single submission is maximally robust.
func Robustness(schedule *domain.Schedule, cfg *config.Config) float64 {
	if schedule.Len() == 0 {
		return constants.Report.MinScore
	}
	if schedule.Len() < 2 {
		return constants.Quality.SingleSubmissionRobustness
	}

	type placed struct {
		iv domain.Interval
	}
	items := make([]placed, 0, schedule.Len())
	for _, id := range schedule.IDs() {
		iv, _ := schedule.Interval(id)
		items = append(items, placed{iv: iv})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].iv.StartDate.Before(items[j].iv.StartDate)
	})

	totalSlack := 0
	for i := 0; i < len(items)-1; i++ {
		slack := dates.DaysBetween(items[i].iv.EndDate, items[i+1].iv.StartDate)
		if slack > 0 {
			totalSlack += slack
		}
	}

	avgSlack := float64(totalSlack) / float64(schedule.Len()-1)
	return clamp(avgSlack*constants.Quality.RobustnessScaleFactor,
		constants.Report.MinScore, constants.Report.MaxScore)
}

// Balance scores how evenly daily load spreads across the schedule span:
// lower variance relative to the mean is better.
func Balance(schedule *domain.Schedule, cfg *config.Config) float64 {
	if schedule.Len() == 0 {
		return constants.Report.MinScore
	}
	if schedule.Len() == 1 {
		return constants.Quality.SingleSubmissionBalance
	}

	load := validation.DailyLoad(schedule, cfg)
	if len(load) == 0 {
		return constants.Report.MinScore
	}

	values := make([]float64, 0, len(load))
	days := make([]time.Time, 0, len(load))
	for day := range load {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	for _, day := range days {
		values = append(values, float64(load[day]))
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return constants.Quality.SingleSubmissionBalance
	}
	if len(values) < 2 {
		return constants.Report.MaxScore
	}

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values) - 1)

	score := constants.Report.MaxScore - (variance/mean)*constants.Quality.BalanceVarianceFactor
	return clamp(score, constants.Report.MinScore, constants.Report.MaxScore)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
