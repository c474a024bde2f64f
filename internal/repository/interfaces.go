// Package repository persists planning runs so past schedules and their
// scores can be listed and reloaded.
package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/paperplan/internal/domain"
)

// PlanRun is one stored planning run: the strategy, its inputs, the
// resulting schedule, and the scores computed for it.
type PlanRun struct {
	ID        string
	CreatedAt time.Time

	Strategy  domain.Strategy
	Heuristic domain.HeuristicKind
	Seed      *int64
	Today     time.Time

	TotalSubmissions int
	DurationDays     int
	Complete         bool
	Unplaced         []string
	Schedule         *domain.Schedule

	Quality    *float64
	Efficiency *float64
}

// PlanRunRepo stores and retrieves planning runs.
type PlanRunRepo interface {
	Create(ctx context.Context, run *PlanRun) error
	GetByID(ctx context.Context, id string) (*PlanRun, error)
	ListRecent(ctx context.Context, limit int) ([]*PlanRun, error)
	Delete(ctx context.Context, id string) error
}
