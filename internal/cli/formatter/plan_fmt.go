package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/planner"
	"github.com/alexanderramin/paperplan/internal/repository"
	"github.com/alexanderramin/paperplan/internal/validation"
)

const timeRounding = time.Millisecond

// FormatPlanResult renders a planning run as a table of intervals with a
// completion summary line.
func FormatPlanResult(result *planner.PlanResult) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(fmt.Sprintf("Schedule — %s", result.Strategy)))
	b.WriteString("\n\n")

	rows := make([][]string, 0, result.Schedule.Len())
	for _, id := range result.Schedule.IDs() {
		iv, _ := result.Schedule.Interval(id)
		rows = append(rows, []string{
			id,
			iv.StartDate.Format(dates.Layout),
			iv.EndDate.Format(dates.Layout),
			fmt.Sprintf("%dd", iv.Days()),
		})
	}
	b.WriteString(RenderTable([]string{"SUBMISSION", "START", "END", "DURATION"}, rows))

	b.WriteString("\n")
	if result.Complete {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("All %d submissions placed", result.Schedule.Len())))
	} else {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d unplaced: %s",
			len(result.Unplaced), strings.Join(result.Unplaced, ", "))))
	}
	b.WriteString(Dim(fmt.Sprintf("  makespan %dd  (%s)\n",
		result.Schedule.DurationDays(), result.Elapsed.Round(timeRounding))))

	return b.String()
}

// FormatValidation renders a validation result: one line per violation and
// the composite rates.
func FormatValidation(result *validation.Result) string {
	var b strings.Builder

	b.WriteString(ValidIndicator(result.IsValid))
	b.WriteString("\n\n")

	if len(result.Violations) > 0 {
		rows := make([][]string, 0, len(result.Violations))
		for _, v := range result.Violations {
			rows = append(rows, []string{StyleRed.Render(v.Code()), v.Describe()})
		}
		b.WriteString(RenderTable([]string{"KIND", "VIOLATION"}, rows))
		b.WriteString("\n")
	}

	if rate, ok := result.Metadata["compliance_rate"].(float64); ok {
		b.WriteString(fmt.Sprintf("deadline compliance  %s\n", RenderProgress(rate, 20)))
	}
	if rate, ok := result.Metadata["blackout_compliance_rate"].(float64); ok {
		b.WriteString(fmt.Sprintf("blackout compliance  %s\n", RenderProgress(rate, 20)))
	}
	if rate, ok := result.Metadata["compatibility_rate"].(float64); ok {
		b.WriteString(fmt.Sprintf("venue compatibility  %s\n", RenderProgress(rate, 20)))
	}

	return b.String()
}

// FormatScores renders a score report.
func FormatScores(report *planner.ScoreReport) string {
	rows := [][]string{
		{"quality", FormatScore(report.Quality)},
		{"efficiency", FormatScore(report.Efficiency)},
		{"robustness", FormatScore(report.Robustness)},
		{"balance", FormatScore(report.Balance)},
	}
	out := RenderTable([]string{"SCORE", "VALUE"}, rows)

	if report.Resource != nil {
		out += Dim(fmt.Sprintf("\navg load %.2f  peak %d  utilization %.0f%%",
			report.Resource.AvgUtilization, report.Resource.PeakUtilization, report.Resource.UtilizationRate))
	}
	if report.Timeline != nil {
		out += Dim(fmt.Sprintf("  span %dd", report.Timeline.DurationDays))
	}
	return out + "\n"
}

// FormatRuns renders stored plan runs newest first.
func FormatRuns(runs []*repository.PlanRun) string {
	if len(runs) == 0 {
		return Dim("no stored runs") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		quality := "-"
		if run.Quality != nil {
			quality = FormatScore(*run.Quality)
		}
		status := StyleGreen.Render("complete")
		if !run.Complete {
			status = StyleYellow.Render(fmt.Sprintf("%d unplaced", len(run.Unplaced)))
		}
		rows = append(rows, []string{
			run.ID[:8],
			run.CreatedAt.Format("2006-01-02 15:04"),
			string(run.Strategy),
			fmt.Sprintf("%d", run.TotalSubmissions),
			fmt.Sprintf("%dd", run.DurationDays),
			quality,
			status,
		})
	}
	return RenderTable([]string{"RUN", "CREATED", "STRATEGY", "SUBS", "SPAN", "QUALITY", "STATUS"}, rows)
}
