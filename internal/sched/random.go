package sched

import (
	"math/rand"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/domain"
)

// randomOrderer shuffles the ready set uniformly. Baseline for comparing
// the informed strategies.
type randomOrderer struct {
	rng *rand.Rand
}

// NewRandom builds the random strategy. A fixed seed makes runs
// reproducible.
func NewRandom(cfg *config.Config, opts Options) (Scheduler, error) {
	core := newCore(cfg, opts)
	return &loopScheduler{
		core:    core,
		tag:     domain.StrategyRandom,
		orderer: &randomOrderer{rng: newRand(opts.Seed)},
	}, nil
}

func (r *randomOrderer) Order(ready []string, day time.Time, schedule *domain.Schedule) []string {
	out := make([]string, len(ready))
	copy(out, ready)
	r.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
