package sched

import (
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// engineeringBonus multiplies the priority of engineering-flagged
// submissions.
const engineeringBonus = 1.25

// greedyOrderer picks the highest-priority ready submission first. Priority
// is kind weight × engineering bonus × deadline urgency.
type greedyOrderer struct {
	core *Core
}

// NewGreedy builds the greedy strategy.
func NewGreedy(cfg *config.Config, opts Options) (Scheduler, error) {
	core := newCore(cfg, opts)
	return &loopScheduler{core: core, tag: domain.StrategyGreedy, orderer: &greedyOrderer{core: core}}, nil
}

func (g *greedyOrderer) Order(ready []string, day time.Time, schedule *domain.Schedule) []string {
	prio := make(map[string]float64, len(ready))
	for _, id := range ready {
		prio[id] = g.priorityOf(id)
	}
	return sortByPriority(ready, func(id string) float64 { return prio[id] })
}

func (g *greedyOrderer) priorityOf(id string) float64 {
	sub, ok := g.core.cfg.SubmissionByID(id)
	if !ok {
		return 0
	}
	return g.priority(sub)
}

func (g *greedyOrderer) priority(sub *domain.Submission) float64 {
	weight := 1.0
	conf, _ := g.core.cfg.ConferenceFor(sub)
	if key, ok := sub.PriorityKey(conf); ok {
		weight = g.core.cfg.Weight(key)
	}

	bonus := 1.0
	if sub.Engineering {
		bonus = engineeringBonus
	}

	return weight * bonus * g.urgency(sub)
}

// urgency is the inverse of the days remaining until the submission's
// deadline, floored at one day; without a deadline it falls back to the
// window horizon.
func (g *greedyOrderer) urgency(sub *domain.Submission) float64 {
	deadline, ok := g.core.cfg.DeadlineFor(sub)
	if !ok {
		return 1.0 / float64(g.core.horizonDays())
	}
	daysUntil := dates.DaysBetween(g.core.today, deadline)
	if daysUntil < 1 {
		daysUntil = 1
	}
	return 1.0 / float64(daysUntil)
}
