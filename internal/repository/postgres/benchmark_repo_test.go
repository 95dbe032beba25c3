package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/iamasit07/connectn/internal/service/benchmark"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/iamasit07/connectn/pkg/uid"
)

func TestDriverName(t *testing.T) {
	tests := map[string]string{
		"":         "pgx",
		"pgx":      "pgx",
		"postgres": "postgres",
		"pq":       "postgres",
		"other":    "pgx",
	}
	for in, want := range tests {
		if got := DriverName(in); got != want {
			t.Fatalf("DriverName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSchemaIsEmbedded(t *testing.T) {
	for _, table := range []string{"benchmark_runs", "benchmark_rows"} {
		if !strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("schema is missing %s", table)
		}
	}
}

func TestOpenRejectsEmptyURL(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatalf("expected an error for an empty url")
	}
}

// TestBenchmarkRepoRoundTrip needs a disposable database in TEST_DATABASE_URL.
func TestBenchmarkRepoRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			db, err := Open(Options{Driver: driver, URL: url, MaxOpenConns: 2, MaxIdleConns: 2, ConnMaxLifetimeMin: 1})
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer db.Close()

			ctx := context.Background()
			repo := NewBenchmarkRepo(db)
			finished := time.Now().UTC().Truncate(time.Millisecond)
			rows := []benchmark.Row{
				{Experiment: benchmark.ExperimentPruning, Board: "5x6", WinLength: 4, Algorithm: bot.StrategyMinimax, Depth: 3, Seed: 1000, NodesExpanded: 900, Moves: 11, ElapsedMs: 4.5, Result: 1},
				{Experiment: benchmark.ExperimentPruning, Board: "5x6", WinLength: 4, Algorithm: bot.StrategyAlphaBeta, Depth: 3, Seed: 1000, NodesExpanded: 400, NodesPruned: 70, Moves: 11, ElapsedMs: 2, Result: 1},
			}
			rep := &benchmark.Report{
				ID:         uid.GenerateRunID(),
				Experiment: benchmark.ExperimentPruning,
				Status:     benchmark.StatusDone,
				CreatedAt:  finished.Add(-time.Second),
				FinishedAt: &finished,
				Rows:       rows,
				Summaries:  benchmark.Summarize(rows),
				Reductions: benchmark.Reductions(rows),
			}
			if err := repo.SaveRun(ctx, rep); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			// Saving again replaces rows instead of duplicating them.
			if err := repo.SaveRun(ctx, rep); err != nil {
				t.Fatalf("SaveRun again: %v", err)
			}

			got, err := repo.GetRun(ctx, rep.ID)
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if len(got.Rows) != 2 || got.Rows[1] != rows[1] || len(got.Summaries) != 2 || len(got.Reductions) != 1 {
				t.Fatalf("unexpected report %+v", got)
			}

			runs, err := repo.ListRuns(ctx, 100)
			if err != nil {
				t.Fatalf("ListRuns: %v", err)
			}
			found := false
			for _, r := range runs {
				if r.ID == rep.ID && r.Games == 2 {
					found = true
				}
			}
			if !found {
				t.Fatalf("run %s missing from listing", rep.ID)
			}

			if _, err := repo.GetRun(ctx, uid.GenerateRunID()); !errors.Is(err, benchmark.ErrRunNotFound) {
				t.Fatalf("expected ErrRunNotFound, got %v", err)
			}
		})
	}
}
