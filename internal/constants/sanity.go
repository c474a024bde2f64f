package constants

import (
	"fmt"
	"math"
)

const weightTolerance = 1e-9

// Sanity checks that the constant tables lie in their expected ranges and
// returns one human-readable finding per problem. An empty result means the
// tables are usable.
func Sanity() []string {
	var findings []string

	if Report.MaxScore <= Report.MinScore {
		findings = append(findings, fmt.Sprintf(
			"report: max_score (%.1f) must exceed min_score (%.1f)", Report.MaxScore, Report.MinScore))
	}

	qualitySum := Scoring.QualityDeadlineWeight + Scoring.QualityDependencyWeight + Scoring.QualityResourceWeight
	if math.Abs(qualitySum-1.0) > weightTolerance {
		findings = append(findings, fmt.Sprintf("scoring: quality weights sum to %.4f, expected 1.0", qualitySum))
	}
	efficiencySum := Scoring.EfficiencyResourceWeight + Scoring.EfficiencyTimelineWeight
	if math.Abs(efficiencySum-1.0) > weightTolerance {
		findings = append(findings, fmt.Sprintf("scoring: efficiency weights sum to %.4f, expected 1.0", efficiencySum))
	}
	weights := []struct {
		name  string
		value float64
	}{
		{"quality_deadline_weight", Scoring.QualityDeadlineWeight},
		{"quality_dependency_weight", Scoring.QualityDependencyWeight},
		{"quality_resource_weight", Scoring.QualityResourceWeight},
		{"quality_metadata_weight", Scoring.QualityMetadataWeight},
		{"efficiency_resource_weight", Scoring.EfficiencyResourceWeight},
		{"efficiency_timeline_weight", Scoring.EfficiencyTimelineWeight},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			findings = append(findings, fmt.Sprintf("scoring: %s (%.4f) outside [0, 1]", w.name, w.value))
		}
	}

	if Efficiency.OptimalUtilizationRate <= 0 || Efficiency.OptimalUtilizationRate > 1 {
		findings = append(findings, fmt.Sprintf(
			"efficiency: optimal_utilization_rate (%.4f) outside (0, 1]", Efficiency.OptimalUtilizationRate))
	}
	if Efficiency.UtilizationDeviationPenalty < 0 {
		findings = append(findings, "efficiency: utilization_deviation_penalty is negative")
	}
	if Efficiency.IdealDaysPerSubmission < 1 {
		findings = append(findings, "efficiency: ideal_days_per_submission below 1")
	}
	if Efficiency.TimelineEfficiencyShortPenalty < 0 || Efficiency.TimelineEfficiencyLongPenalty < 0 {
		findings = append(findings, "efficiency: timeline penalties must be non-negative")
	}
	if Efficiency.RandomnessFactor < 0 {
		findings = append(findings, "efficiency: randomness_factor is negative")
	}

	if Quality.PercentageMultiplier != 100.0 {
		findings = append(findings, fmt.Sprintf(
			"quality: percentage_multiplier (%.1f) expected 100", Quality.PercentageMultiplier))
	}
	singles := []struct {
		name  string
		value float64
	}{
		{"single_submission_robustness", Quality.SingleSubmissionRobustness},
		{"single_submission_balance", Quality.SingleSubmissionBalance},
	}
	for _, s := range singles {
		if s.value < Report.MinScore || s.value > Report.MaxScore {
			findings = append(findings, fmt.Sprintf("quality: %s (%.1f) outside score bounds", s.name, s.value))
		}
	}
	if Quality.BalanceVarianceFactor < 0 || Quality.RobustnessScaleFactor < 0 {
		findings = append(findings, "quality: scale factors must be non-negative")
	}

	if Scheduling.ConferenceResponseTimeDays < 0 {
		findings = append(findings, "scheduling: conference_response_time_days is negative")
	}
	if Scheduling.AbstractAdvanceDays < 0 {
		findings = append(findings, "scheduling: abstract_advance_days is negative")
	}
	if Scheduling.LookaheadWindowDays < 0 {
		findings = append(findings, "scheduling: lookahead_window_days is negative")
	}
	if Scheduling.FallbackHorizonDays < 1 {
		findings = append(findings, "scheduling: fallback_horizon_days below 1")
	}
	if Scheduling.BacktrackDepthLimit < 1 {
		findings = append(findings, "scheduling: backtrack_depth_limit below 1")
	}
	if Scheduling.SolverTimeLimit <= 0 {
		findings = append(findings, "scheduling: solver_time_limit must be positive")
	}

	return findings
}
