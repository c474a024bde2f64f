// Package planner is the engine façade: it owns a config, selects a
// strategy through the registry, and exposes the plan/validate/score
// pipeline consumed by external collaborators.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/constants"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/sched"
	"github.com/alexanderramin/paperplan/internal/scoring"
	"github.com/alexanderramin/paperplan/internal/validation"
)

// Planner owns one immutable config and produces fresh schedules per plan.
type Planner struct {
	cfg      *config.Config
	today    time.Time
	registry *sched.Registry
	observer UseCaseObserver
}

// Option customizes a Planner.
type Option func(*Planner)

// WithToday fixes the reference day. Tests inject it; production reads the
// system clock once at construction.
func WithToday(t time.Time) Option {
	return func(p *Planner) { p.today = dates.Normalize(t) }
}

// WithObserver routes planner telemetry to o.
func WithObserver(o UseCaseObserver) Option {
	return func(p *Planner) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithRegistry replaces the built-in strategy registry.
func WithRegistry(r *sched.Registry) Option {
	return func(p *Planner) {
		if r != nil {
			p.registry = r
		}
	}
}

// New builds a Planner, running the startup constants check and the fatal
// pre-planning config checks (unknown dependency ids, cycles).
func New(cfg *config.Config, opts ...Option) (*Planner, error) {
	if findings := constants.Sanity(); len(findings) > 0 {
		return nil, fmt.Errorf("scoring constants out of range: %s", strings.Join(findings, "; "))
	}

	p := &Planner{
		cfg:      cfg,
		today:    dates.Normalize(time.Now()),
		registry: sched.Builtins(),
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := sched.Preflight(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Config returns the planner's config.
func (p *Planner) Config() *config.Config { return p.cfg }

// Today returns the planner's reference day.
func (p *Planner) Today() time.Time { return p.today }

// PlanRequest selects and tunes a strategy for one run.
type PlanRequest struct {
	Strategy  domain.Strategy
	Heuristic domain.HeuristicKind
	Seed      *int64
	TimeLimit time.Duration

	// DisableSolver makes the optimal strategy behave as if no MILP
	// backend were installed.
	DisableSolver bool
}

// PlanResult is the outcome of one planning run. Complete and Unplaced
// together distinguish partial schedules from full ones.
type PlanResult struct {
	Strategy domain.Strategy
	Schedule *domain.Schedule
	Unplaced []string
	Complete bool
	Elapsed  time.Duration
}

// Plan creates the scheduler for the requested strategy and runs it.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	started := time.Now()

	opts := sched.Options{
		Today:         p.today,
		Heuristic:     req.Heuristic,
		Seed:          req.Seed,
		TimeLimit:     req.TimeLimit,
		DisableSolver: req.DisableSolver,
		Warn:          p.warnf(ctx),
	}
	scheduler, err := p.registry.Create(req.Strategy, p.cfg, opts)
	if err != nil {
		p.observe(ctx, "plan", started, err, map[string]any{"strategy": string(req.Strategy)})
		return nil, err
	}

	result, err := scheduler.Schedule(ctx)
	if err != nil {
		p.observe(ctx, "plan", started, err, map[string]any{"strategy": string(req.Strategy)})
		return nil, err
	}

	p.observe(ctx, "plan", started, nil, map[string]any{
		"strategy": string(req.Strategy),
		"placed":   result.Schedule.Len(),
		"unplaced": len(result.Unplaced),
	})
	return &PlanResult{
		Strategy: req.Strategy,
		Schedule: result.Schedule,
		Unplaced: result.Unplaced,
		Complete: result.Complete,
		Elapsed:  time.Since(started),
	}, nil
}

// Validate runs the composite constraint validator over a schedule.
func (p *Planner) Validate(ctx context.Context, schedule *domain.Schedule) *validation.Result {
	started := time.Now()
	result := validation.Schedule(schedule, p.cfg)
	p.observe(ctx, "validate", started, nil, map[string]any{
		"valid":      result.IsValid,
		"violations": len(result.Violations),
	})
	return result
}

// ScoreReport bundles the public scores with their sub-metrics.
type ScoreReport struct {
	Quality    float64
	Efficiency float64
	Robustness float64
	Balance    float64
	Resource   *scoring.ResourceMetrics
	Timeline   *scoring.TimelineMetrics
}

// Score computes quality and efficiency for a schedule. Empty schedules
// score 0 across the board.
func (p *Planner) Score(ctx context.Context, schedule *domain.Schedule) *ScoreReport {
	started := time.Now()
	report := &ScoreReport{
		Quality:    scoring.Quality(schedule, p.cfg),
		Efficiency: scoring.Efficiency(schedule, p.cfg),
		Robustness: scoring.Robustness(schedule, p.cfg),
		Balance:    scoring.Balance(schedule, p.cfg),
		Resource:   scoring.EfficiencyResource(schedule, p.cfg),
		Timeline:   scoring.EfficiencyTimeline(schedule, p.cfg),
	}
	p.observe(ctx, "score", started, nil, map[string]any{
		"quality":    report.Quality,
		"efficiency": report.Efficiency,
	})
	return report
}

// ScheduleDocument is the engine-output wire format of a planning run.
type ScheduleDocument struct {
	Strategy         string           `json:"strategy"`
	TotalSubmissions int              `json:"total_submissions"`
	DurationDays     int              `json:"duration_days"`
	Intervals        *domain.Schedule `json:"intervals"`
	Complete         bool             `json:"complete"`
	Unplaced         []string         `json:"unplaced,omitempty"`
}

// Document renders a plan result as its wire document.
func (p *Planner) Document(result *PlanResult) *ScheduleDocument {
	return &ScheduleDocument{
		Strategy:         string(result.Strategy),
		TotalSubmissions: result.Schedule.Len(),
		DurationDays:     result.Schedule.DurationDays(),
		Intervals:        result.Schedule,
		Complete:         result.Complete,
		Unplaced:         result.Unplaced,
	}
}

func (p *Planner) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	p.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

func (p *Planner) warnf(ctx context.Context) func(format string, args ...any) {
	return func(format string, args ...any) {
		p.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "warning",
			Success:   true,
			Fields:    map[string]any{"message": fmt.Sprintf(format, args...)},
			StartedAt: time.Now(),
		})
	}
}
