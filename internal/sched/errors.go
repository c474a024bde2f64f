package sched

import (
	"fmt"

	"github.com/alexanderramin/paperplan/internal/domain"
)

// CycleError reports a cycle in the dependency graph. Fatal before planning.
type CycleError struct {
	SubmissionID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency involving %s", e.SubmissionID)
}

// MissingDependencyError reports a depends_on entry referencing an unknown
// submission. Fatal before planning.
type MissingDependencyError struct {
	SubmissionID string
	DependencyID string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("submission %s depends on unknown submission %s", e.SubmissionID, e.DependencyID)
}

// UnknownStrategyError reports a strategy tag with no registered factory.
type UnknownStrategyError struct {
	Tag domain.Strategy
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy: %q", string(e.Tag))
}

// UnknownHeuristicError reports an unrecognized heuristic ordering name.
type UnknownHeuristicError struct {
	Name string
}

func (e *UnknownHeuristicError) Error() string {
	return fmt.Sprintf("unknown heuristic strategy: %q", e.Name)
}
