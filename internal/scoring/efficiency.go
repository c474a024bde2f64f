package scoring

import (
	"math"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/validation"
)

// ResourceMetrics describes how the schedule uses the concurrency budget.
type ResourceMetrics struct {
	AvgUtilization  float64
	PeakUtilization int
	UtilizationRate float64 // percent of the concurrency cap in use on average
	Score           float64
}

// TimelineMetrics describes the schedule span against its ideal duration.
type TimelineMetrics struct {
	DurationDays int
	AvgDailyLoad float64
	Score        float64
}

// Efficiency is the weighted mean of the resource and timeline sub-scores.
// Empty schedules score 0.
func Efficiency(schedule *domain.Schedule, cfg *config.Config) float64 {
	if schedule.Len() == 0 {
		return constants.Report.MinScore
	}

	resource := EfficiencyResource(schedule, cfg)
	timeline := EfficiencyTimeline(schedule, cfg)
	if resource == nil || timeline == nil {
		return constants.Report.MinScore
	}

	score := resource.Score*constants.Scoring.EfficiencyResourceWeight +
		timeline.Score*constants.Scoring.EfficiencyTimelineWeight
	return clamp(score, constants.Report.MinScore, constants.Report.MaxScore)
}

// EfficiencyResource scores average utilization against the optimal
// utilization ratio; deviation in either direction is penalized.
func EfficiencyResource(schedule *domain.Schedule, cfg *config.Config) *ResourceMetrics {
	if schedule.Len() == 0 {
		return nil
	}

	load := validation.DailyLoad(schedule, cfg)
	if len(load) == 0 {
		return nil
	}

	peak := 0
	total := 0
	for _, n := range load {
		total += n
		if n > peak {
			peak = n
		}
	}
	avg := float64(total) / float64(len(load))

	maxConcurrent := cfg.MaxConcurrentSubmissions
	metrics := &ResourceMetrics{
		AvgUtilization:  avg,
		PeakUtilization: peak,
	}
	if maxConcurrent <= 0 {
		metrics.Score = constants.Report.MinScore
		return metrics
	}

	metrics.UtilizationRate = avg / float64(maxConcurrent) * constants.Quality.PercentageMultiplier

	optimal := float64(maxConcurrent) * constants.Efficiency.OptimalUtilizationRate
	deviation := math.Abs(avg-optimal) / optimal
	metrics.Score = clamp(
		constants.Report.MaxScore-deviation*constants.Efficiency.UtilizationDeviationPenalty,
		constants.Report.MinScore, constants.Report.MaxScore)
	return metrics
}

// EfficiencyTimeline scores the schedule span against the ideal duration of
// the configured submission count. Shorter than ideal takes a mild penalty,
// longer a steeper one.
func EfficiencyTimeline(schedule *domain.Schedule, cfg *config.Config) *TimelineMetrics {
	if schedule.Len() == 0 {
		return nil
	}

	duration := schedule.DurationDays()
	metrics := &TimelineMetrics{DurationDays: duration}
	if duration > 0 {
		metrics.AvgDailyLoad = float64(schedule.Len()) / float64(duration)
	}

	totalConfigured := len(cfg.Submissions)
	if totalConfigured == 0 {
		metrics.Score = constants.Report.MinScore
		return metrics
	}

	ideal := float64(totalConfigured) * constants.Efficiency.IdealDaysPerSubmission
	ratio := 1.0
	if ideal > 0 {
		ratio = float64(duration) / ideal
	}

	var score float64
	if ratio <= 1.0 {
		score = constants.Report.MaxScore * (1.0 - (1.0-ratio)*constants.Efficiency.TimelineEfficiencyShortPenalty)
	} else {
		score = constants.Report.MaxScore * (1.0 - (ratio-1.0)*constants.Efficiency.TimelineEfficiencyLongPenalty)
	}
	metrics.Score = clamp(score, constants.Report.MinScore, constants.Report.MaxScore)
	return metrics
}
