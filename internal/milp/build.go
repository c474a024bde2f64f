package milp

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
)

// BuildInput carries everything the model builder needs from the planning
// context.
type BuildInput struct {
	Config      *config.Config
	WindowStart time.Time
	WindowEnd   time.Time

	// Order lists submission ids parents-first (topological).
	Order []string
}

// Build constructs the mixed-integer model: one binary variable per
// (submission, candidate start day), exactly-one-start rows, dependency
// ordering rows, per-day capacity rows, and the makespan objective.
func Build(in BuildInput) *Model {
	cfg := in.Config
	m := &Model{
		Submissions: in.Order,
		Groups:      make(map[string][]int, len(in.Order)),
		Capacity:    cfg.MaxConcurrentSubmissions,
		Origin:      in.WindowStart,
	}

	// Columns: every working day in the window that respects the
	// submission's static earliest start and deadline cut-off.
	for _, id := range in.Order {
		sub, ok := cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		duration := sub.DurationDays(cfg.LeadTimes())

		lower := in.WindowStart
		if sub.EarliestStartDate != nil && sub.EarliestStartDate.After(lower) {
			lower = *sub.EarliestStartDate
		}
		if sub.EngineeringReadyDate != nil && sub.EngineeringReadyDate.After(lower) {
			lower = *sub.EngineeringReadyDate
		}
		upper := in.WindowEnd
		if deadline, ok := cfg.DeadlineFor(sub); ok {
			latest := deadline.AddDate(0, 0, -duration)
			if latest.Before(upper) {
				upper = latest
			}
		}

		var cols []int
		for day := lower; !day.After(upper); day = day.AddDate(0, 0, 1) {
			if !dates.IsWorkingDay(day, cfg.BlackoutDates) {
				continue
			}
			m.Vars = append(m.Vars, Var{
				Submission: id,
				Start:      day,
				End:        day.AddDate(0, 0, duration),
			})
			cols = append(cols, len(m.Vars)-1)
		}
		m.Groups[id] = cols
	}

	m.MakespanCol = len(m.Vars)
	m.buildRows(in)
	return m
}

func (m *Model) buildRows(in BuildInput) {
	cfg := in.Config

	// Exactly one start per submission.
	for _, id := range m.Submissions {
		terms := make([]Term, 0, len(m.Groups[id]))
		for _, col := range m.Groups[id] {
			terms = append(terms, Term{Col: col, Coef: 1})
		}
		m.Rows = append(m.Rows, Row{
			Name:  fmt.Sprintf("start_once[%s]", id),
			Terms: terms,
			Sense: EQ,
			RHS:   1,
		})
	}

	// Dependency ordering: start(child) − end(parent) ≥ lead.
	for _, id := range m.Submissions {
		sub, ok := cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		for _, depID := range sub.DependsOn {
			if _, known := cfg.SubmissionByID(depID); !known {
				continue
			}
			m.Precedences = append(m.Precedences, Precedence{
				Parent:   depID,
				Child:    id,
				LeadDays: sub.LeadTimeFromParents,
			})
			var terms []Term
			for _, col := range m.Groups[id] {
				terms = append(terms, Term{Col: col, Coef: float64(m.DayOffset(m.Vars[col].Start))})
			}
			for _, col := range m.Groups[depID] {
				terms = append(terms, Term{Col: col, Coef: -float64(m.DayOffset(m.Vars[col].End))})
			}
			m.Rows = append(m.Rows, Row{
				Name:  fmt.Sprintf("precede[%s->%s]", depID, id),
				Terms: terms,
				Sense: GE,
				RHS:   float64(sub.LeadTimeFromParents),
			})
		}
	}

	// Capacity: per covered day, the sum of covering columns ≤ cap.
	coverage := make(map[time.Time][]int)
	for col, v := range m.Vars {
		for day := v.Start; day.Before(v.End); day = day.AddDate(0, 0, 1) {
			coverage[day] = append(coverage[day], col)
		}
	}
	days := make([]time.Time, 0, len(coverage))
	for day := range coverage {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	for _, day := range days {
		cols := coverage[day]
		if len(cols) <= m.Capacity {
			continue // cannot bind
		}
		terms := make([]Term, 0, len(cols))
		for _, col := range cols {
			terms = append(terms, Term{Col: col, Coef: 1})
		}
		m.Rows = append(m.Rows, Row{
			Name:  fmt.Sprintf("capacity[%s]", day.Format(dates.Layout)),
			Terms: terms,
			Sense: LE,
			RHS:   float64(m.Capacity),
		})
	}

	// Makespan reformulation: z ≥ end_i for every submission.
	for _, id := range m.Submissions {
		terms := []Term{{Col: m.MakespanCol, Coef: 1}}
		for _, col := range m.Groups[id] {
			terms = append(terms, Term{Col: col, Coef: -float64(m.DayOffset(m.Vars[col].End))})
		}
		m.Rows = append(m.Rows, Row{
			Name:  fmt.Sprintf("makespan[%s]", id),
			Terms: terms,
			Sense: GE,
			RHS:   0,
		})
	}
}
