package sched

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/milp"
)

// optimalScheduler builds a mixed-integer model of the whole problem and
// hands it to a solver under a wall-clock limit. On timeout the best
// incumbent is used; with no solver or no submissions it degrades to an
// empty schedule.
type optimalScheduler struct {
	core      *Core
	solver    milp.Solver
	timeLimit time.Duration
}

// NewOptimal builds the optimal strategy.
func NewOptimal(cfg *config.Config, opts Options) (Scheduler, error) {
	var solver milp.Solver
	if !opts.DisableSolver {
		solver = opts.Solver
		if solver == nil {
			solver = milp.BranchBound{}
		}
	}
	timeLimit := opts.TimeLimit
	if timeLimit <= 0 {
		timeLimit = constants.Scheduling.SolverTimeLimit
	}
	return &optimalScheduler{
		core:      newCore(cfg, opts),
		solver:    solver,
		timeLimit: timeLimit,
	}, nil
}

func (o *optimalScheduler) Strategy() domain.Strategy { return domain.StrategyOptimal }

func (o *optimalScheduler) Schedule(ctx context.Context) (*Result, error) {
	order, err := o.core.DependencyOrder()
	if err != nil {
		return nil, err
	}

	schedule := domain.NewSchedule()
	if len(order) == 0 {
		return o.core.finish(schedule), nil
	}
	if o.solver == nil {
		o.core.warn("no MILP solver available, returning empty schedule")
		return o.core.finish(schedule), nil
	}

	start, end := o.core.Window()
	model := milp.Build(milp.BuildInput{
		Config:      o.core.cfg,
		WindowStart: start,
		WindowEnd:   end,
		Order:       order,
	})

	solveCtx, cancel := context.WithTimeout(ctx, o.timeLimit)
	defer cancel()

	sol, err := o.solver.Solve(solveCtx, model)
	if err != nil {
		return nil, fmt.Errorf("solving schedule model: %w", err)
	}

	switch sol.Status {
	case milp.StatusInfeasible:
		o.core.warn("schedule model is infeasible, returning empty schedule")
	case milp.StatusTimeLimit:
		o.core.warn("solver hit the %s time limit, using best incumbent", o.timeLimit)
	}

	for id, startDay := range sol.Starts {
		sub, ok := o.core.cfg.SubmissionByID(id)
		if !ok {
			continue
		}
		schedule.Add(id, domain.NewInterval(startDay, o.core.duration(sub)))
	}
	return o.core.finish(schedule), nil
}
