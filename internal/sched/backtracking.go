package sched

import (
	"context"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// backtrackingScheduler uses greedy ordering but makes placement
// reversible: when a later deadline becomes unreachable and advancing the
// day cannot fix it, the most recent placement is retracted and the next
// candidate tried. Retractions are bounded to guarantee termination; on
// exhaustion the partial schedule is returned.
type backtrackingScheduler struct {
	core       *Core
	orderer    *greedyOrderer
	depthLimit int
}

// NewBacktracking builds the backtracking strategy.
func NewBacktracking(cfg *config.Config, opts Options) (Scheduler, error) {
	core := newCore(cfg, opts)
	return &backtrackingScheduler{
		core:       core,
		orderer:    &greedyOrderer{core: core},
		depthLimit: constants.Scheduling.BacktrackDepthLimit,
	}, nil
}

func (b *backtrackingScheduler) Strategy() domain.Strategy { return domain.StrategyBacktracking }

type placement struct {
	id  string
	day time.Time
}

func (b *backtrackingScheduler) Schedule(ctx context.Context) (*Result, error) {
	topo, err := b.core.DependencyOrder()
	if err != nil {
		return nil, err
	}

	schedule := domain.NewSchedule()
	b.core.EarlyAbstractPass(schedule)

	start, end := b.core.Window()
	total := len(b.core.cfg.Submissions)

	var stack []placement
	banned := make(map[time.Time]map[string]bool)
	retractions := 0

	day := start
	for !day.After(end) && schedule.Len() < total {
		if !dates.IsWorkingDay(day, b.core.cfg.BlackoutDates) {
			day = day.AddDate(0, 0, 1)
			continue
		}

		active := b.core.ActiveAt(schedule, day)
		ready := b.core.ReadySet(topo, schedule, day)
		ready = dropBanned(ready, banned[day])
		ready = b.orderer.Order(ready, day, schedule)

		inFlight := len(active)
		for _, id := range ready {
			if inFlight >= b.core.cfg.MaxConcurrentSubmissions {
				break
			}
			sub, ok := b.core.cfg.SubmissionByID(id)
			if !ok {
				continue
			}
			schedule.Add(id, domain.NewInterval(day, b.core.duration(sub)))
			stack = append(stack, placement{id: id, day: day})
			inFlight++
		}

		if b.deadEnd(schedule, day) && len(stack) > 0 && retractions < b.depthLimit {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			schedule.Remove(last.id)
			if banned[last.day] == nil {
				banned[last.day] = make(map[string]bool)
			}
			banned[last.day][last.id] = true
			retractions++
			day = last.day
			continue
		}

		day = day.AddDate(0, 0, 1)
	}

	return b.core.finish(schedule), nil
}

func dropBanned(ready []string, banned map[string]bool) []string {
	if len(banned) == 0 {
		return ready
	}
	out := ready[:0:0]
	for _, id := range ready {
		if !banned[id] {
			out = append(out, id)
		}
	}
	return out
}

// deadEnd reports whether some unscheduled submission with a deadline can
// no longer start in time, no matter how far the day advances.
func (b *backtrackingScheduler) deadEnd(schedule *domain.Schedule, day time.Time) bool {
	for _, id := range b.core.cfg.SubmissionIDs() {
		if schedule.Has(id) {
			continue
		}
		sub, _ := b.core.cfg.SubmissionByID(id)
		deadline, ok := b.core.cfg.DeadlineFor(sub)
		if !ok {
			continue
		}
		latestStart := deadline.AddDate(0, 0, -sub.DurationDays(b.core.cfg.LeadTimes()))
		earliest := b.earliestFeasible(sub, schedule, make(map[string]bool))
		if day.After(earliest) {
			earliest = day
		}
		if earliest.After(latestStart) {
			return true
		}
	}
	return false
}

// earliestFeasible bounds the earliest possible start of sub from below,
// chasing unscheduled parents through their own earliest feasible ends.
func (b *backtrackingScheduler) earliestFeasible(sub *domain.Submission, schedule *domain.Schedule, visiting map[string]bool) time.Time {
	earliest := b.core.EarliestStart(sub, schedule)
	visiting[sub.ID] = true
	for _, depID := range sub.DependsOn {
		if schedule.Has(depID) || visiting[depID] {
			continue
		}
		parent, ok := b.core.cfg.SubmissionByID(depID)
		if !ok {
			continue
		}
		parentStart := b.earliestFeasible(parent, schedule, visiting)
		parentEnd := parentStart.AddDate(0, 0, parent.DurationDays(b.core.cfg.LeadTimes()))
		required := parentEnd.AddDate(0, 0, sub.LeadTimeFromParents)
		if required.After(earliest) {
			earliest = required
		}
	}
	delete(visiting, sub.ID)
	return earliest
}
