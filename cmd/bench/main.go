package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/iamasit07/connectn/internal/config"
	"github.com/iamasit07/connectn/internal/repository/postgres"
	"github.com/iamasit07/connectn/internal/service/benchmark"
	"github.com/iamasit07/connectn/pkg/uid"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := config.LoadEnvFile()
	cfg := config.LoadConfig()

	experiment := flag.String("experiment", string(benchmark.ExperimentPruning), "board-sizes, win-length, pruning or depth-scaling")
	runs := flag.Int("runs", cfg.BenchmarkRuns, "games per configuration")
	workers := flag.Int("workers", cfg.BenchmarkWorkers, "parallel games (0 = one per CPU)")
	minimaxDepth := flag.Int("minimax-depth", cfg.MinimaxDepth, "search depth for minimax")
	alphaBetaDepth := flag.Int("alphabeta-depth", cfg.AlphaBetaDepth, "search depth for alpha-beta")
	maxDepth := flag.Int("max-depth", 7, "deepest search for depth-scaling")
	csvPath := flag.String("csv", "", "write raw rows as CSV to this file")
	parquetPath := flag.String("parquet", "", "write raw rows as parquet to this file")
	save := flag.Bool("save", false, "store the report in DATABASE_URL")
	logFormat := flag.String("log-format", "console", "console or json")
	flag.Parse()

	config.SetupLogging(cfg.LogLevel, *logFormat, os.Stderr)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	e, err := benchmark.ParseExperiment(*experiment)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-experiment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := benchmark.NewRunner(*workers).Run(ctx, e, benchmark.PlanOptions{
		Runs:           *runs,
		MinimaxDepth:   *minimaxDepth,
		AlphaBetaDepth: *alphaBetaDepth,
		MaxDepth:       *maxDepth,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark-failed")
	}
	rep.ID = uid.GenerateRunID()

	printSummaries(rep)

	if *csvPath != "" {
		if err := writeFile(*csvPath, func(f *os.File) error { return benchmark.WriteCSV(f, rep.Rows) }); err != nil {
			log.Fatal().Err(err).Str("path", *csvPath).Msg("csv-write-failed")
		}
		log.Info().Str("path", *csvPath).Msg("csv-written")
	}
	if *parquetPath != "" {
		if err := writeFile(*parquetPath, func(f *os.File) error { return benchmark.WriteParquet(f, rep.Rows) }); err != nil {
			log.Fatal().Err(err).Str("path", *parquetPath).Msg("parquet-write-failed")
		}
		log.Info().Str("path", *parquetPath).Msg("parquet-written")
	}

	if *save {
		db, err := postgres.Open(postgres.Options{
			Driver:             cfg.DBDriver,
			URL:                cfg.DatabaseURL,
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("database-init-failed")
		}
		defer db.Close()
		if err := postgres.NewBenchmarkRepo(db).SaveRun(ctx, rep); err != nil {
			log.Fatal().Err(err).Msg("save-failed")
		}
		log.Info().Str("run", rep.ID).Msg("run-saved")
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummaries(rep *benchmark.Report) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BOARD\tWIN\tALGORITHM\tDEPTH\tGAMES\tNODES (MEAN)\tNODES (STDEV)\tPRUNED\tWIN RATE\tMS/GAME")
	for _, s := range rep.Summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%.1f\t%.1f\t%.1f\t%.0f%%\t%.2f\n",
			s.Board, s.WinLength, s.Algorithm, s.Depth, s.Games, s.MeanNodes, s.StdevNodes,
			s.MeanPruned, s.WinRate*100, s.MeanElapsedMs)
	}
	tw.Flush()

	if len(rep.Reductions) > 0 {
		fmt.Println()
		tw = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SEED\tMINIMAX\tALPHA-BETA\tPRUNED\tREDUCTION")
		for _, r := range rep.Reductions {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.1f%%\n", r.Seed, r.MinimaxNodes, r.AlphaBetaNodes, r.Pruned, r.Percent)
		}
		tw.Flush()
	}
}
