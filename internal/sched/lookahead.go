package sched

import (
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// lookaheadDescendantWeight is the priority bonus granted per transitive
// descendant in the dependency DAG.
const lookaheadDescendantWeight = 0.1

// lookaheadOrderer extends greedy priority with a bonus for submissions
// that unblock many others, and defers a submission whose unscheduled
// dependencies carry strictly higher priority.
type lookaheadOrderer struct {
	greedy *greedyOrderer

	// descendants counts transitive dependents per submission.
	descendants map[string]int
}

// NewLookahead builds the lookahead strategy.
func NewLookahead(cfg *config.Config, opts Options) (Scheduler, error) {
	core := newCore(cfg, opts)
	return &loopScheduler{
		core: core,
		tag:  domain.StrategyLookahead,
		orderer: &lookaheadOrderer{
			greedy:      &greedyOrderer{core: core},
			descendants: countDescendants(cfg),
		},
	}, nil
}

// countDescendants computes the transitive dependent count per submission.
func countDescendants(cfg *config.Config) map[string]int {
	children := make(map[string][]string, len(cfg.Submissions))
	for _, sub := range cfg.Submissions {
		for _, dep := range sub.DependsOn {
			children[dep] = append(children[dep], sub.ID)
		}
	}

	memo := make(map[string]map[string]bool, len(cfg.Submissions))
	var collect func(id string) map[string]bool
	collect = func(id string) map[string]bool {
		if seen, ok := memo[id]; ok {
			return seen
		}
		seen := make(map[string]bool)
		memo[id] = seen // break accidental cycles; topo check rejects them later
		for _, child := range children[id] {
			seen[child] = true
			for grand := range collect(child) {
				seen[grand] = true
			}
		}
		return seen
	}

	counts := make(map[string]int, len(cfg.Submissions))
	for _, sub := range cfg.Submissions {
		counts[sub.ID] = len(collect(sub.ID))
	}
	return counts
}

func (l *lookaheadOrderer) Order(ready []string, day time.Time, schedule *domain.Schedule) []string {
	prio := make(map[string]float64, len(ready))
	for _, id := range ready {
		prio[id] = l.priorityOf(id)
	}
	return sortByPriority(ready, func(id string) float64 { return prio[id] })
}

func (l *lookaheadOrderer) priorityOf(id string) float64 {
	return l.greedy.priorityOf(id) + float64(l.descendants[id])*lookaheadDescendantWeight
}

// CanPlace defers a submission when any of its unscheduled dependencies has
// strictly higher priority; ties do not defer.
func (l *lookaheadOrderer) CanPlace(id string, day time.Time, schedule *domain.Schedule) bool {
	sub, ok := l.greedy.core.cfg.SubmissionByID(id)
	if !ok {
		return false
	}
	own := l.priorityOf(id)
	for _, depID := range sub.DependsOn {
		if schedule.Has(depID) {
			continue
		}
		if _, known := l.greedy.core.cfg.SubmissionByID(depID); !known {
			continue
		}
		if l.priorityOf(depID) > own {
			return false
		}
	}
	return true
}
