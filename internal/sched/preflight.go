package sched

import (
	"github.com/alexanderramin/paperplan/internal/config"
)

// Preflight runs the fatal pre-planning checks on a config: every
// depends_on id must resolve and the dependency graph must be acyclic.
func Preflight(cfg *config.Config) error {
	for _, id := range cfg.SubmissionIDs() {
		sub, _ := cfg.SubmissionByID(id)
		for _, depID := range sub.DependsOn {
			if _, ok := cfg.SubmissionByID(depID); !ok {
				return &MissingDependencyError{SubmissionID: id, DependencyID: depID}
			}
		}
	}
	core := newCore(cfg, Options{})
	_, err := core.DependencyOrder()
	return err
}
