package sched

import (
	"math/rand"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// stochasticOrderer is greedy priority plus additive uniform noise on
// [−r, +r], helping escape local optima across repeated runs.
type stochasticOrderer struct {
	greedy *greedyOrderer
	rng    *rand.Rand
	factor float64
}

// NewStochastic builds the stochastic strategy. RandomnessFactor defaults
// to the constants table; a fixed seed makes runs reproducible.
func NewStochastic(cfg *config.Config, opts Options) (Scheduler, error) {
	factor := opts.RandomnessFactor
	if factor == 0 {
		factor = constants.Efficiency.RandomnessFactor
	}
	core := newCore(cfg, opts)
	return &loopScheduler{
		core: core,
		tag:  domain.StrategyStochastic,
		orderer: &stochasticOrderer{
			greedy: &greedyOrderer{core: core},
			rng:    newRand(opts.Seed),
			factor: factor,
		},
	}, nil
}

func (s *stochasticOrderer) Order(ready []string, day time.Time, schedule *domain.Schedule) []string {
	prio := make(map[string]float64, len(ready))
	for _, id := range ready {
		noise := (s.rng.Float64()*2 - 1) * s.factor
		prio[id] = s.greedy.priorityOf(id) + noise
	}
	return sortByPriority(ready, func(id string) float64 { return prio[id] })
}
