package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/paperplan/internal/cli/formatter"
	"github.com/alexanderramin/paperplan/internal/config"
	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/alexanderramin/paperplan/internal/planner"
	"github.com/alexanderramin/paperplan/internal/repository"
	"github.com/spf13/cobra"
)

type planFlags struct {
	configPath string
	strategy   string
	heuristic  string
	seed       int64
	seedSet    bool
	today      string
	timeLimit  time.Duration
	save       bool
	asJSON     bool
	verbose    bool
}

func newPlanCmd(app *App) *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a schedule from a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.seedSet = cmd.Flags().Changed("seed")
			return runPlan(cmd.Context(), app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "configuration JSON file (required)")
	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "", "strategy: greedy, stochastic, lookahead, backtracking, random, heuristic, optimal")
	cmd.Flags().StringVar(&flags.heuristic, "heuristic", "", "heuristic ordering: earliest_deadline, latest_start, shortest_processing_time, longest_processing_time, critical_path")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "seed for the random and stochastic strategies")
	cmd.Flags().StringVar(&flags.today, "today", "", "reference day (YYYY-MM-DD, default: system clock)")
	cmd.Flags().DurationVar(&flags.timeLimit, "time-limit", 0, "optimal solver wall-clock limit")
	cmd.Flags().BoolVar(&flags.save, "save", false, "store the run in the plan database")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "emit the schedule document as JSON")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log planner events to stderr")
	cmd.MarkFlagRequired("config")

	return cmd
}

func runPlan(ctx context.Context, app *App, flags *planFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	p, err := buildPlanner(cfg, flags.today, flags.verbose)
	if err != nil {
		return err
	}

	strategy, err := resolveStrategy(app, flags.strategy)
	if err != nil {
		return err
	}

	req := planner.PlanRequest{
		Strategy:  strategy,
		Heuristic: domain.HeuristicKind(flags.heuristic),
		TimeLimit: flags.timeLimit,
	}
	if flags.seedSet {
		seed := flags.seed
		req.Seed = &seed
	}

	var stopSpinner func()
	if strategy == domain.StrategyOptimal && app.Interactive && !flags.asJSON {
		stopSpinner = formatter.StartSpinner("solving schedule model...")
	}
	result, err := p.Plan(ctx, req)
	if stopSpinner != nil {
		stopSpinner()
	}
	if err != nil {
		return err
	}

	report := p.Score(ctx, result.Schedule)

	if flags.save && app.Runs != nil {
		if err := saveRun(ctx, app.Runs, p, result, req, report); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
	}

	if flags.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p.Document(result))
	}

	fmt.Print(formatter.FormatPlanResult(result))
	fmt.Println()
	fmt.Print(formatter.FormatScores(report))
	return nil
}

func buildPlanner(cfg *config.Config, today string, verbose bool) (*planner.Planner, error) {
	var opts []planner.Option
	if today != "" {
		day, err := dates.Parse("today", today)
		if err != nil {
			return nil, err
		}
		opts = append(opts, planner.WithToday(day))
	}
	if verbose {
		opts = append(opts, planner.WithObserver(planner.NewLogUseCaseObserver(os.Stderr)))
	}
	return planner.New(cfg, opts...)
}

func saveRun(ctx context.Context, runs repository.PlanRunRepo, p *planner.Planner, result *planner.PlanResult, req planner.PlanRequest, report *planner.ScoreReport) error {
	quality := report.Quality
	efficiency := report.Efficiency
	return runs.Create(ctx, &repository.PlanRun{
		Strategy:         result.Strategy,
		Heuristic:        req.Heuristic,
		Seed:             req.Seed,
		Today:            p.Today(),
		TotalSubmissions: result.Schedule.Len(),
		DurationDays:     result.Schedule.DurationDays(),
		Complete:         result.Complete,
		Unplaced:         result.Unplaced,
		Schedule:         result.Schedule,
		Quality:          &quality,
		Efficiency:       &efficiency,
	})
}
