package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"tradenet/internal/config"
	"tradenet/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	dataDir := flag.String("data", "", "input data directory (overrides config)")
	reportsDir := flag.String("out", "", "output reports directory (overrides config)")
	fromYear := flag.Int("from", 0, "first year to analyze (overrides config)")
	toYear := flag.Int("to", 0, "last year to analyze (overrides config)")
	direction := flag.String("direction", "", "single direction to analyze: outgoing, incoming or both (default: all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *reportsDir != "" {
		cfg.Paths.ReportsDir = *reportsDir
	}
	if *fromYear != 0 {
		cfg.Years.From = *fromYear
	}
	if *toYear != 0 {
		cfg.Years.To = *toYear
	}
	if *direction != "" {
		cfg.Directions = []string{*direction}
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting trade network analysis",
		"app", config.AppName,
		"version", config.AppVersion,
		"years", fmt.Sprintf("%d-%d", cfg.Years.From, cfg.Years.To),
		"directions", cfg.Directions,
		"data_dir", cfg.Paths.DataDir,
		"reports_dir", cfg.Paths.ReportsDir,
	)

	runner := pipeline.NewRunner(cfg, logger)
	summary, err := runner.Run(context.Background())
	if err != nil {
		logger.Error("Batch analysis failed", "error", err)
		os.Exit(1)
	}

	logger.Info("analysis finished",
		"run_id", summary.RunID,
		"years_run", summary.YearsRun,
		"years_skipped", summary.YearsSkipped,
	)
	for _, row := range summary.Summary {
		logger.Info("year summary",
			"year", row.Year,
			"direction", row.Direction,
			"top_country", row.TopCountry,
			"min_constraint", row.MinConstraint,
			"avg_constraint", row.AvgConstraint,
			"valid_countries", fmt.Sprintf("%d/%d", row.NumValid, row.NumCountries),
		)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
