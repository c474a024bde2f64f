package sched

import (
	"context"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/milp"
)

// Options tune a scheduler instance. Zero values take documented defaults.
type Options struct {
	// Today anchors the scheduling window. Zero means the system clock,
	// read once at construction.
	Today time.Time

	// Heuristic selects the ordering for the heuristic strategy.
	Heuristic domain.HeuristicKind

	// Seed fixes the random source of the random and stochastic
	// strategies. Nil means a time-derived seed.
	Seed *int64

	// RandomnessFactor is the stochastic noise half-range; 0 means the
	// constants-table default.
	RandomnessFactor float64

	// TimeLimit bounds the optimal strategy's solver wall clock; 0 means
	// the constants-table default.
	TimeLimit time.Duration

	// Solver overrides the MILP backend. Nil selects the bundled
	// branch-and-bound driver unless DisableSolver is set.
	Solver        milp.Solver
	DisableSolver bool

	// Warn receives non-fatal diagnostics (legacy duration fallback,
	// unplaced submissions, solver degradation).
	Warn func(format string, args ...any)
}

// Factory builds a scheduler for one strategy.
type Factory func(cfg *config.Config, opts Options) (Scheduler, error)

// Registry maps strategy tags to factories. It is written once at process
// start; lookups are read-only.
type Registry struct {
	factories map[domain.Strategy]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[domain.Strategy]Factory)}
}

// Register binds a factory to a strategy tag, replacing any previous one.
func (r *Registry) Register(tag domain.Strategy, f Factory) {
	r.factories[tag] = f
}

// Create instantiates the scheduler registered for tag.
func (r *Registry) Create(tag domain.Strategy, cfg *config.Config, opts Options) (Scheduler, error) {
	f, ok := r.factories[tag]
	if !ok {
		return nil, &UnknownStrategyError{Tag: tag}
	}
	return f(cfg, opts)
}

// Tags returns the registered strategy tags in display order.
func (r *Registry) Tags() []domain.Strategy {
	var tags []domain.Strategy
	for _, tag := range domain.AllStrategies() {
		if _, ok := r.factories[tag]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Builtins returns a registry with all seven built-in strategies.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register(domain.StrategyGreedy, NewGreedy)
	r.Register(domain.StrategyRandom, NewRandom)
	r.Register(domain.StrategyHeuristic, NewHeuristic)
	r.Register(domain.StrategyStochastic, NewStochastic)
	r.Register(domain.StrategyLookahead, NewLookahead)
	r.Register(domain.StrategyBacktracking, NewBacktracking)
	r.Register(domain.StrategyOptimal, NewOptimal)
	return r
}

// loopScheduler runs the shared day loop with a strategy-specific orderer.
type loopScheduler struct {
	core    *Core
	tag     domain.Strategy
	orderer Orderer
}

func (s *loopScheduler) Strategy() domain.Strategy { return s.tag }

func (s *loopScheduler) Schedule(ctx context.Context) (*Result, error) {
	return s.core.run(s.orderer)
}
