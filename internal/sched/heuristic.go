package sched

import (
	"sort"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// heuristicOrderer applies one of five classic dispatch orderings to the
// ready set.
type heuristicOrderer struct {
	core *Core
	kind domain.HeuristicKind

	// dependents counts, per submission, how many others list it in
	// depends_on. Used by the critical-path ordering.
	dependents map[string]int
}

// NewHeuristic builds the heuristic strategy for the ordering named in
// Options.Heuristic (default earliest deadline).
func NewHeuristic(cfg *config.Config, opts Options) (Scheduler, error) {
	kind := opts.Heuristic
	if kind == "" {
		kind = domain.HeuristicEarliestDeadline
	}
	if _, ok := domain.ParseHeuristic(string(kind)); !ok {
		return nil, &UnknownHeuristicError{Name: string(kind)}
	}

	dependents := make(map[string]int, len(cfg.Submissions))
	for _, sub := range cfg.Submissions {
		for _, dep := range sub.DependsOn {
			dependents[dep]++
		}
	}

	core := newCore(cfg, opts)
	return &loopScheduler{
		core: core,
		tag:  domain.StrategyHeuristic,
		orderer: &heuristicOrderer{
			core:       core,
			kind:       kind,
			dependents: dependents,
		},
	}, nil
}

func (h *heuristicOrderer) Order(ready []string, day time.Time, schedule *domain.Schedule) []string {
	out := make([]string, len(ready))
	copy(out, ready)

	switch h.kind {
	case domain.HeuristicEarliestDeadline:
		h.sortByDate(out, h.deadlineOf, false)
	case domain.HeuristicLatestStart:
		h.sortByDate(out, h.latestStartOf, true)
	case domain.HeuristicShortestProcessingTime:
		h.sortByDays(out, h.processingTimeOf, false)
	case domain.HeuristicLongestProcessingTime:
		h.sortByDays(out, h.processingTimeOf, true)
	case domain.HeuristicCriticalPath:
		h.sortByDays(out, func(id string) int { return h.dependents[id] }, true)
	}
	return out
}

func (h *heuristicOrderer) sortByDate(ids []string, key func(string) time.Time, descending bool) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := key(ids[i]), key(ids[j])
		if !a.Equal(b) {
			if descending {
				return a.After(b)
			}
			return a.Before(b)
		}
		return ids[i] < ids[j]
	})
}

func (h *heuristicOrderer) sortByDays(ids []string, key func(string) int, descending bool) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := key(ids[i]), key(ids[j])
		if a != b {
			if descending {
				return a > b
			}
			return a < b
		}
		return ids[i] < ids[j]
	})
}

// deadlineOf returns the binding deadline; submissions without one sort
// last under the earliest-deadline ordering.
func (h *heuristicOrderer) deadlineOf(id string) time.Time {
	sub, ok := h.core.cfg.SubmissionByID(id)
	if !ok {
		return dates.MaxDate
	}
	if deadline, ok := h.core.cfg.DeadlineFor(sub); ok {
		return deadline
	}
	return dates.MaxDate
}

// latestStartOf is the deadline minus the kind lead time: the last day the
// submission could start and still finish on time.
func (h *heuristicOrderer) latestStartOf(id string) time.Time {
	sub, ok := h.core.cfg.SubmissionByID(id)
	if !ok {
		return dates.MinDate
	}
	deadline, ok := h.core.cfg.DeadlineFor(sub)
	if !ok {
		return dates.MinDate
	}
	return deadline.AddDate(0, 0, -sub.DurationDays(h.core.cfg.LeadTimes()))
}

func (h *heuristicOrderer) processingTimeOf(id string) int {
	sub, ok := h.core.cfg.SubmissionByID(id)
	if !ok {
		return 0
	}
	return sub.DurationDays(h.core.cfg.LeadTimes())
}
