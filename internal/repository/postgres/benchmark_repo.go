package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/connectn/internal/service/benchmark"
	"github.com/iamasit07/connectn/internal/service/bot"
)

// BenchmarkRepo stores benchmark reports: one benchmark_runs row per run
// with the aggregates as JSONB, and the raw games in benchmark_rows.
type BenchmarkRepo struct {
	DB *sql.DB
}

func NewBenchmarkRepo(db *sql.DB) *BenchmarkRepo {
	return &BenchmarkRepo{DB: db}
}

// SaveRun upserts the run and replaces its rows transactionally
func (r *BenchmarkRepo) SaveRun(ctx context.Context, rep *benchmark.Report) error {
	summaries, err := json.Marshal(orEmpty(rep.Summaries))
	if err != nil {
		return fmt.Errorf("failed to marshal summaries: %w", err)
	}
	reductions, err := json.Marshal(orEmpty(rep.Reductions))
	if err != nil {
		return fmt.Errorf("failed to marshal reductions: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO benchmark_runs (id, experiment, status, error, created_at, finished_at, summaries, reductions)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		status = EXCLUDED.status,
		error = EXCLUDED.error,
		finished_at = EXCLUDED.finished_at,
		summaries = EXCLUDED.summaries,
		reductions = EXCLUDED.reductions;
	`
	_, err = tx.ExecContext(ctx, query, rep.ID, string(rep.Experiment), string(rep.Status), rep.Error,
		rep.CreatedAt, rep.FinishedAt, string(summaries), string(reductions))
	if err != nil {
		return fmt.Errorf("failed to upsert benchmark run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM benchmark_rows WHERE run_id = $1`, rep.ID); err != nil {
		return fmt.Errorf("failed to clear benchmark rows: %w", err)
	}

	if len(rep.Rows) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO benchmark_rows (run_id, idx, board, win_length, algorithm, depth, seed, nodes_expanded, nodes_pruned, moves, elapsed_ms, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`)
		if err != nil {
			return fmt.Errorf("failed to prepare row insert: %w", err)
		}
		defer stmt.Close()

		for i, row := range rep.Rows {
			_, err := stmt.ExecContext(ctx, rep.ID, i, row.Board, row.WinLength, string(row.Algorithm), row.Depth,
				row.Seed, row.NodesExpanded, row.NodesPruned, row.Moves, row.ElapsedMs, row.Result)
			if err != nil {
				return fmt.Errorf("failed to insert benchmark row %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRun loads a run with its rows. It returns benchmark.ErrRunNotFound for
// unknown ids.
func (r *BenchmarkRepo) GetRun(ctx context.Context, id string) (*benchmark.Report, error) {
	query := `
	SELECT id, experiment, status, error, created_at, finished_at, summaries, reductions
	FROM benchmark_runs
	WHERE id = $1;
	`
	var rep benchmark.Report
	var experiment, status string
	var finishedAt sql.NullTime
	var summaries, reductions []byte

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rep.ID,
		&experiment,
		&status,
		&rep.Error,
		&rep.CreatedAt,
		&finishedAt,
		&summaries,
		&reductions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, benchmark.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get benchmark run: %w", err)
	}

	rep.Experiment = benchmark.Experiment(experiment)
	rep.Status = benchmark.Status(status)
	if finishedAt.Valid {
		t := finishedAt.Time
		rep.FinishedAt = &t
	}
	if err := json.Unmarshal(summaries, &rep.Summaries); err != nil {
		return nil, fmt.Errorf("failed to decode summaries: %w", err)
	}
	if err := json.Unmarshal(reductions, &rep.Reductions); err != nil {
		return nil, fmt.Errorf("failed to decode reductions: %w", err)
	}

	rep.Rows, err = r.rows(ctx, rep.ID, rep.Experiment)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *BenchmarkRepo) rows(ctx context.Context, runID string, e benchmark.Experiment) ([]benchmark.Row, error) {
	query := `
	SELECT board, win_length, algorithm, depth, seed, nodes_expanded, nodes_pruned, moves, elapsed_ms, result
	FROM benchmark_rows
	WHERE run_id = $1
	ORDER BY idx;
	`
	rows, err := r.DB.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark rows: %w", err)
	}
	defer rows.Close()

	var out []benchmark.Row
	for rows.Next() {
		row := benchmark.Row{Experiment: e}
		var algorithm string
		err := rows.Scan(
			&row.Board,
			&row.WinLength,
			&algorithm,
			&row.Depth,
			&row.Seed,
			&row.NodesExpanded,
			&row.NodesPruned,
			&row.Moves,
			&row.ElapsedMs,
			&row.Result,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benchmark row: %w", err)
		}
		row.Algorithm = bot.Strategy(algorithm)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListRuns returns the most recent runs first
func (r *BenchmarkRepo) ListRuns(ctx context.Context, limit int) ([]benchmark.RunInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
	SELECT r.id, r.experiment, r.status, r.created_at, COUNT(b.idx)
	FROM benchmark_runs r
	LEFT JOIN benchmark_rows b ON b.run_id = r.id
	GROUP BY r.id
	ORDER BY r.created_at DESC
	LIMIT $1;
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmark runs: %w", err)
	}
	defer rows.Close()

	var out []benchmark.RunInfo
	for rows.Next() {
		var info benchmark.RunInfo
		var experiment, status string
		if err := rows.Scan(&info.ID, &experiment, &status, &info.CreatedAt, &info.Games); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark run: %w", err)
		}
		info.Experiment = benchmark.Experiment(experiment)
		info.Status = benchmark.Status(status)
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes runs created before the cutoff and returns how
// many were deleted.
func (r *BenchmarkRepo) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM benchmark_runs WHERE created_at < $1`, time.Now().Add(-age))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old benchmark runs: %w", err)
	}
	return res.RowsAffected()
}

func orEmpty[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
