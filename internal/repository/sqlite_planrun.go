package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/paperplan/internal/dates"
	"github.com/alexanderramin/paperplan/internal/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a plan run id does not exist.
var ErrNotFound = errors.New("plan run not found")

// planRunColumns is the canonical SELECT column list for plan_runs.
const planRunColumns = `id, created_at, strategy, heuristic, seed, today,
		total_submissions, duration_days, complete, unplaced, intervals,
		quality, efficiency`

// SQLitePlanRunRepo implements PlanRunRepo using a SQLite database.
type SQLitePlanRunRepo struct {
	db *sql.DB
}

// NewSQLitePlanRunRepo creates a new SQLitePlanRunRepo.
func NewSQLitePlanRunRepo(db *sql.DB) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: db}
}

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *PlanRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	unplaced, err := json.Marshal(run.Unplaced)
	if err != nil {
		return fmt.Errorf("encoding unplaced list: %w", err)
	}
	intervals, err := json.Marshal(run.Schedule)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	query := `INSERT INTO plan_runs (` + planRunColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
		string(run.Strategy),
		string(run.Heuristic),
		nullableInt64(run.Seed),
		run.Today.Format(dates.Layout),
		run.TotalSubmissions,
		run.DurationDays,
		boolToInt(run.Complete),
		string(unplaced),
		string(intervals),
		nullableFloat64(run.Quality),
		nullableFloat64(run.Efficiency),
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

func (r *SQLitePlanRunRepo) GetByID(ctx context.Context, id string) (*PlanRun, error) {
	query := `SELECT ` + planRunColumns + ` FROM plan_runs WHERE id = ?`
	return r.scanPlanRun(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRunRepo) ListRecent(ctx context.Context, limit int) ([]*PlanRun, error) {
	query := `SELECT ` + planRunColumns + ` FROM plan_runs
		ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var runs []*PlanRun
	for rows.Next() {
		run, err := r.scanPlanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLitePlanRunRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plan_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan run: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLitePlanRunRepo) scanPlanRun(row rowScanner) (*PlanRun, error) {
	var (
		run        PlanRun
		createdAt  string
		strategy   string
		heuristic  string
		seed       sql.NullInt64
		today      string
		complete   int
		unplaced   string
		intervals  string
		quality    sql.NullFloat64
		efficiency sql.NullFloat64
	)
	err := row.Scan(
		&run.ID, &createdAt, &strategy, &heuristic, &seed, &today,
		&run.TotalSubmissions, &run.DurationDays, &complete, &unplaced, &intervals,
		&quality, &efficiency,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning plan run: %w", err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	run.Today, err = time.ParseInLocation(dates.Layout, today, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parsing today: %w", err)
	}
	run.Strategy = domain.Strategy(strategy)
	run.Heuristic = domain.HeuristicKind(heuristic)
	if seed.Valid {
		v := seed.Int64
		run.Seed = &v
	}
	run.Complete = complete != 0
	if err := json.Unmarshal([]byte(unplaced), &run.Unplaced); err != nil {
		return nil, fmt.Errorf("decoding unplaced list: %w", err)
	}
	run.Schedule = domain.NewSchedule()
	if err := json.Unmarshal([]byte(intervals), run.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	if quality.Valid {
		v := quality.Float64
		run.Quality = &v
	}
	if efficiency.Valid {
		v := efficiency.Float64
		run.Efficiency = &v
	}
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableFloat64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
