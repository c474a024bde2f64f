// Package sched implements the scheduling core shared by all strategies:
// topological ordering, the scheduling window, ready-set computation, and
// concurrency-bounded placement, plus the strategy variants themselves.
package sched

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/validation"
)

// Result is the outcome of one scheduling run. A partial schedule is still
// internally consistent; Unplaced lists what did not fit in the window.
type Result struct {
	Schedule *domain.Schedule
	Unplaced []string
	Complete bool
}

// Scheduler generates a schedule for every submission in its config.
type Scheduler interface {
	Strategy() domain.Strategy
	Schedule(ctx context.Context) (*Result, error)
}

// Orderer decides which ready submission runs next. Implementations must be
// deterministic for a fixed seed; the shared loop applies no tie-break of
// its own, so orderers that rank by priority break ties by id themselves.
type Orderer interface {
	Order(ready []string, day time.Time, schedule *domain.Schedule) []string
}

// placementFilter lets a strategy veto individual placements (lookahead
// deferral). Optional on Orderer implementations.
type placementFilter interface {
	CanPlace(id string, day time.Time, schedule *domain.Schedule) bool
}

// Core carries the shared scheduling primitives. The reference day is
// injected so runs are reproducible in tests.
type Core struct {
	cfg   *config.Config
	today time.Time
	warn  func(format string, args ...any)
}

func newCore(cfg *config.Config, opts Options) *Core {
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Core{cfg: cfg, today: dates.Normalize(today), warn: warn}
}

// DependencyOrder returns submission ids in topological order, parents
// before children. DFS with gray/black marking; a back-edge yields a
// CycleError naming the submission on the cycle.
func (c *Core) DependencyOrder() ([]string, error) {
	const (
		white = iota
		gray
		black
	)
	marks := make(map[string]int, len(c.cfg.Submissions))
	order := make([]string, 0, len(c.cfg.Submissions))

	var visit func(id string) error
	visit = func(id string) error {
		switch marks[id] {
		case gray:
			return &CycleError{SubmissionID: id}
		case black:
			return nil
		}
		marks[id] = gray
		sub, ok := c.cfg.SubmissionByID(id)
		if ok {
			deps := make([]string, len(sub.DependsOn))
			copy(deps, sub.DependsOn)
			sort.Strings(deps)
			for _, dep := range deps {
				if _, known := c.cfg.SubmissionByID(dep); !known {
					continue // rejected earlier by config validation
				}
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		marks[id] = black
		order = append(order, id)
		return nil
	}

	for _, id := range c.cfg.SubmissionIDs() {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Window returns the scheduling window: the first working day on or after
// today through the latest conference deadline plus the response buffer.
// Without any deadline the window spans the fallback horizon.
func (c *Core) Window() (start, end time.Time) {
	start = dates.FirstWorkingDayOnOrAfter(c.today, c.cfg.BlackoutDates)
	if latest, ok := c.cfg.LatestDeadline(); ok && latest.After(start) {
		return start, latest.AddDate(0, 0, constants.Scheduling.ConferenceResponseTimeDays)
	}
	return start, start.AddDate(0, 0, constants.Scheduling.FallbackHorizonDays)
}

// horizonDays is the window length in days, used as the urgency denominator
// for submissions without a deadline.
func (c *Core) horizonDays() int {
	start, end := c.Window()
	if d := dates.DaysBetween(start, end); d > 0 {
		return d
	}
	return 1
}

// EarliestStart returns the earliest feasible start for sub given the
// current schedule: today, its own readiness dates, and every scheduled
// parent's end plus lead time.
func (c *Core) EarliestStart(sub *domain.Submission, schedule *domain.Schedule) time.Time {
	earliest := c.today
	if sub.EarliestStartDate != nil && sub.EarliestStartDate.After(earliest) {
		earliest = *sub.EarliestStartDate
	}
	if sub.EngineeringReadyDate != nil && sub.EngineeringReadyDate.After(earliest) {
		earliest = *sub.EngineeringReadyDate
	}
	for _, depID := range sub.DependsOn {
		iv, ok := schedule.Interval(depID)
		if !ok {
			continue
		}
		required := iv.EndDate.AddDate(0, 0, sub.LeadTimeFromParents)
		if required.After(earliest) {
			earliest = required
		}
	}
	return earliest
}

// ReadySet returns the ids in topo order that are unscheduled, whose parents
// are all scheduled and finished (with lead time) by day, and whose earliest
// start has arrived.
func (c *Core) ReadySet(topo []string, schedule *domain.Schedule, day time.Time) []string {
	var ready []string
	for _, id := range topo {
		if schedule.Has(id) {
			continue
		}
		sub, ok := c.cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		if !c.dependenciesSatisfied(sub, schedule, day) {
			continue
		}
		if day.Before(c.EarliestStart(sub, schedule)) {
			continue
		}
		ready = append(ready, id)
	}
	return ready
}

func (c *Core) dependenciesSatisfied(sub *domain.Submission, schedule *domain.Schedule, day time.Time) bool {
	for _, depID := range sub.DependsOn {
		iv, ok := schedule.Interval(depID)
		if !ok {
			return false
		}
		if day.Before(iv.EndDate.AddDate(0, 0, sub.LeadTimeFromParents)) {
			return false
		}
	}
	return true
}

// ActiveAt returns the ids whose interval contains day, sorted.
func (c *Core) ActiveAt(schedule *domain.Schedule, day time.Time) []string {
	var active []string
	for _, id := range schedule.IDs() {
		if iv, ok := schedule.Interval(id); ok && iv.Contains(day) {
			active = append(active, id)
		}
	}
	return active
}

// PlaceUpToLimit places candidates at day in order until the concurrency cap
// is reached, honoring an optional placement filter. Returns the number
// placed.
func (c *Core) PlaceUpToLimit(candidates []string, schedule *domain.Schedule, active []string, day time.Time, filter placementFilter) int {
	placed := 0
	inFlight := len(active)
	for _, id := range candidates {
		if inFlight >= c.cfg.MaxConcurrentSubmissions {
			break
		}
		if filter != nil && !filter.CanPlace(id, day, schedule) {
			continue
		}
		sub, ok := c.cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		schedule.Add(id, domain.NewInterval(day, c.duration(sub)))
		inFlight++
		placed++
	}
	return placed
}

// EarlyAbstractPass front-loads abstracts of abstract-then-paper workflows
// when the option is enabled, placing each at today plus the advance window
// if every constraint holds there.
func (c *Core) EarlyAbstractPass(schedule *domain.Schedule) {
	if !c.cfg.Options.EnableEarlyAbstractScheduling {
		return
	}
	early := c.today.AddDate(0, 0, c.cfg.Options.AbstractAdvanceDays)
	for _, id := range c.cfg.SubmissionIDs() {
		sub, _ := c.cfg.SubmissionByID(id)
		if sub.Kind != domain.KindAbstract || sub.Workflow != domain.WorkflowAbstractThenPaper {
			continue
		}
		if schedule.Has(id) {
			continue
		}
		if validation.SubmissionAt(sub, early, schedule, c.cfg, c.today) {
			schedule.Add(id, domain.NewInterval(early, c.duration(sub)))
		}
	}
}

func (c *Core) duration(sub *domain.Submission) int {
	d, legacy := sub.Duration(c.cfg.LeadTimes())
	if legacy {
		c.warn("submission %s: no duration mapping for kind %s, using %d-day fallback", sub.ID, sub.Kind, d)
	}
	return d
}

// run drives the shared day loop with the given orderer.
func (c *Core) run(orderer Orderer) (*Result, error) {
	topo, err := c.DependencyOrder()
	if err != nil {
		return nil, err
	}

	schedule := domain.NewSchedule()
	c.EarlyAbstractPass(schedule)

	filter, _ := orderer.(placementFilter)
	start, end := c.Window()
	total := len(c.cfg.Submissions)

	for day := start; !day.After(end) && schedule.Len() < total; day = day.AddDate(0, 0, 1) {
		if !dates.IsWorkingDay(day, c.cfg.BlackoutDates) {
			continue
		}
		active := c.ActiveAt(schedule, day)
		ready := c.ReadySet(topo, schedule, day)
		ready = orderer.Order(ready, day, schedule)
		c.PlaceUpToLimit(ready, schedule, active, day, filter)
	}

	return c.finish(schedule), nil
}

func (c *Core) finish(schedule *domain.Schedule) *Result {
	var unplaced []string
	for _, id := range c.cfg.SubmissionIDs() {
		if !schedule.Has(id) {
			unplaced = append(unplaced, id)
		}
	}
	if len(unplaced) > 0 {
		c.warn("window elapsed with %d submissions unplaced", len(unplaced))
	}
	return &Result{
		Schedule: schedule,
		Unplaced: unplaced,
		Complete: len(unplaced) == 0,
	}
}

// sortByPriority sorts ids by descending priority with the canonical
// lexicographic id tie-break.
func sortByPriority(ids []string, priority func(id string) float64) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := priority(out[i]), priority(out[j])
		if pi != pj {
			return pi > pj
		}
		return out[i] < out[j]
	})
	return out
}
