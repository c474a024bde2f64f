package milp

import (
	"context"
	"time"
)

// Status reports how a solve ended.
type Status int

const (
	// StatusOptimal means the search space was exhausted and the incumbent
	// is provably best.
	StatusOptimal Status = iota
	// StatusFeasible means a solution was found but optimality was not
	// proven.
	StatusFeasible
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
	// StatusTimeLimit means the wall clock ran out; Starts holds the best
	// incumbent, possibly empty.
	StatusTimeLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeLimit:
		return "time_limit"
	}
	return "unknown"
}

// Solution is a solver outcome: chosen start day per submission and the
// makespan objective in days from the model origin.
type Solution struct {
	Starts    map[string]time.Time
	Objective int
	Status    Status
}

// Solver drives a model to a solution. Implementations must honor context
// cancellation cooperatively and return their best incumbent on deadline.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}

// BranchBound is the bundled exact driver: depth-first search over the
// exactly-one groups in dependency order, candidate days ascending, pruning
// on capacity, precedence, and the incumbent makespan bound.
type BranchBound struct{}

const deadlineCheckInterval = 1024

type bbState struct {
	m        *Model
	parents  map[string][]Precedence // child -> incoming edges
	chosen   map[string]int          // submission -> chosen col
	dayLoad  map[time.Time]int
	deadline time.Time
	hasLimit bool
	timedOut bool
	nodes    int

	bestCols     map[string]int
	bestObj      int
	hasIncumbent bool
}

func (BranchBound) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if m.Empty() {
		return &Solution{Starts: map[string]time.Time{}, Status: StatusOptimal}, nil
	}
	if _, bad := m.Infeasible(); bad {
		return &Solution{Starts: map[string]time.Time{}, Status: StatusInfeasible}, nil
	}

	parents := make(map[string][]Precedence, len(m.Precedences))
	for _, p := range m.Precedences {
		parents[p.Child] = append(parents[p.Child], p)
	}

	st := &bbState{
		m:       m,
		parents: parents,
		chosen:  make(map[string]int, len(m.Submissions)),
		dayLoad: make(map[time.Time]int),
	}
	if dl, ok := ctx.Deadline(); ok {
		st.deadline = dl
		st.hasLimit = true
	}

	st.search(ctx, 0, 0)

	if !st.hasIncumbent {
		if st.timedOut {
			return &Solution{Starts: map[string]time.Time{}, Status: StatusTimeLimit}, nil
		}
		return &Solution{Starts: map[string]time.Time{}, Status: StatusInfeasible}, nil
	}

	starts := make(map[string]time.Time, len(st.bestCols))
	for id, col := range st.bestCols {
		starts[id] = m.Vars[col].Start
	}
	status := StatusOptimal
	if st.timedOut {
		status = StatusTimeLimit
	}
	return &Solution{Starts: starts, Objective: st.bestObj, Status: status}, nil
}

// search explores group idx carrying the running makespan.
func (st *bbState) search(ctx context.Context, idx, makespan int) {
	if st.timedOut {
		return
	}
	st.nodes++
	if st.nodes%deadlineCheckInterval == 0 {
		if ctx.Err() != nil || (st.hasLimit && time.Now().After(st.deadline)) {
			st.timedOut = true
			return
		}
	}

	if idx == len(st.m.Submissions) {
		if !st.hasIncumbent || makespan < st.bestObj {
			st.bestObj = makespan
			st.bestCols = make(map[string]int, len(st.chosen))
			for id, col := range st.chosen {
				st.bestCols[id] = col
			}
			st.hasIncumbent = true
		}
		return
	}

	id := st.m.Submissions[idx]
	for _, col := range st.m.Groups[id] {
		v := st.m.Vars[col]
		end := st.m.DayOffset(v.End)

		next := makespan
		if end > next {
			next = end
		}
		if st.hasIncumbent && next >= st.bestObj {
			// Candidate days ascend, so every later column is no better.
			break
		}
		if !st.precedenceOK(id, v.Start) {
			continue
		}
		if !st.capacityOK(v) {
			continue
		}

		st.place(id, col, v)
		st.search(ctx, idx+1, next)
		st.unplace(id, v)
		if st.timedOut {
			return
		}
	}
}

func (st *bbState) precedenceOK(id string, start time.Time) bool {
	for _, edge := range st.parents[id] {
		parentCol, placed := st.chosen[edge.Parent]
		if !placed {
			// Parents precede children in Submissions order, so an
			// unplaced parent means it is outside the model.
			continue
		}
		required := st.m.Vars[parentCol].End.AddDate(0, 0, edge.LeadDays)
		if start.Before(required) {
			return false
		}
	}
	return true
}

func (st *bbState) capacityOK(v Var) bool {
	for day := v.Start; day.Before(v.End); day = day.AddDate(0, 0, 1) {
		if st.dayLoad[day]+1 > st.m.Capacity {
			return false
		}
	}
	return true
}

func (st *bbState) place(id string, col int, v Var) {
	st.chosen[id] = col
	for day := v.Start; day.Before(v.End); day = day.AddDate(0, 0, 1) {
		st.dayLoad[day]++
	}
}

func (st *bbState) unplace(id string, v Var) {
	delete(st.chosen, id)
	for day := v.Start; day.Before(v.End); day = day.AddDate(0, 0, 1) {
		st.dayLoad[day]--
	}
}
