package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"tradenet/internal/config"
	"tradenet/internal/exporter"
	"tradenet/internal/ingest"
	"tradenet/internal/network"
	"tradenet/internal/pmi"
	"tradenet/internal/report"
	"tradenet/internal/structural"
)

// Runner executes the batch analysis over the configured year range.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	csv      *exporter.CSVWriter
	weighter *pmi.Weighter
	analyzer *structural.Analyzer
}

// NewRunner creates a batch runner.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		csv:      exporter.NewCSVWriter(logger),
		weighter: pmi.NewWeighter(logger),
		analyzer: structural.NewAnalyzer(logger),
	}
}

// RunSummary reports the outcome of one batch run.
type RunSummary struct {
	RunID        string
	YearsRun     int
	YearsSkipped []int
	Tables       []report.YearTable
	Summary      []report.SummaryRow
}

// yearResult carries one year's output across the errgroup boundary.
type yearResult struct {
	year    int
	skipped bool
	tables  []report.YearTable
}

// Run processes every configured year concurrently, then writes the
// cross-year summary, frequency tables and consolidated workbook. A year
// whose input file is missing is skipped (when configured) and listed in
// the summary; any other failure aborts the batch.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)

	ctx, span := startSpan(ctx, "pipeline.run",
		attribute.String("run.id", runID),
		attribute.Int("run.from_year", r.cfg.Years.From),
		attribute.Int("run.to_year", r.cfg.Years.To),
	)
	var runErr error
	defer func() { endSpan(span, runErr) }()

	logger.InfoContext(ctx, "starting batch analysis",
		"from_year", r.cfg.Years.From,
		"to_year", r.cfg.Years.To,
		"directions", r.cfg.Directions,
		"max_concurrency", r.cfg.Batch.MaxConcurrency,
	)

	var (
		mu      sync.Mutex
		results []yearResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Batch.MaxConcurrency)

	for year := r.cfg.Years.From; year <= r.cfg.Years.To; year++ {
		year := year
		g.Go(func() error {
			res, err := r.runYear(gctx, logger, year)
			if err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		runErr = err
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].year < results[j].year })

	summary := &RunSummary{RunID: runID}
	for _, res := range results {
		if res.skipped {
			summary.YearsSkipped = append(summary.YearsSkipped, res.year)
			continue
		}
		summary.YearsRun++
		summary.Tables = append(summary.Tables, res.tables...)
	}
	summary.Summary = report.Summarize(summary.Tables)

	if err := r.writeReports(ctx, summary); err != nil {
		runErr = err
		return nil, err
	}

	logger.InfoContext(ctx, "batch analysis complete",
		"years_run", summary.YearsRun,
		"years_skipped", summary.YearsSkipped,
		"tables", len(summary.Tables),
	)
	return summary, nil
}

// runYear executes the full stage chain for one year: ingest, PMI
// weighting, adjacency build, then structural hole analysis per direction.
func (r *Runner) runYear(ctx context.Context, logger *slog.Logger, year int) (yearResult, error) {
	ctx, span := startSpan(ctx, "pipeline.year", attribute.Int("year", year))
	var stageErr error
	defer func() { endSpan(span, stageErr) }()

	inputPath := filepath.Join(r.cfg.Paths.DataDir, strconv.Itoa(year), config.RawDataFile(year))
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		if r.cfg.Batch.SkipMissing {
			logger.WarnContext(ctx, "input file missing, skipping year",
				"year", year,
				"path", inputPath,
			)
			return yearResult{year: year, skipped: true}, nil
		}
		stageErr = fmt.Errorf("input file not found: %s", inputPath)
		return yearResult{}, stageErr
	}

	edges, err := ingest.ReadTradeEdges(inputPath, logger)
	if err != nil {
		stageErr = err
		return yearResult{}, err
	}
	if len(edges) == 0 {
		stageErr = fmt.Errorf("no valid trade edges in %s", inputPath)
		return yearResult{}, stageErr
	}

	matrix, weighted := r.weighter.ComputeWeightedEdges(ctx, edges)

	outDir := filepath.Join(r.cfg.Paths.ReportsDir, strconv.Itoa(year))
	if err := r.csv.WritePMIMatrix(matrix, filepath.Join(outDir, config.PMIMatrixFile(year))); err != nil {
		stageErr = err
		return yearResult{}, err
	}
	if err := r.csv.WriteEdgeTable(weighted, filepath.Join(outDir, config.EdgeTableFile(year))); err != nil {
		stageErr = err
		return yearResult{}, err
	}

	adj, countries, err := ingest.BuildAdjacency(weighted)
	if err != nil {
		stageErr = err
		return yearResult{}, err
	}
	if err := r.csv.WriteAdjacency(adj, countries, filepath.Join(outDir, config.AdjacencyFile(year))); err != nil {
		stageErr = err
		return yearResult{}, err
	}

	res := yearResult{year: year}
	for _, dir := range r.cfg.ParsedDirections() {
		graph, err := network.NewGraph(adj, countries, dir)
		if err != nil {
			stageErr = fmt.Errorf("build %s graph: %w", dir, err)
			return yearResult{}, stageErr
		}
		metrics := r.analyzer.Compute(ctx, graph)

		path := filepath.Join(outDir, config.MetricsFile(dir.String(), year))
		if err := r.csv.WriteMetrics(metrics, path); err != nil {
			stageErr = err
			return yearResult{}, err
		}
		res.tables = append(res.tables, report.YearTable{
			Year:      year,
			Direction: dir.String(),
			Metrics:   metrics,
		})
	}

	logger.InfoContext(ctx, "year analysis complete",
		"year", year,
		"countries", len(countries),
		"edges", len(weighted),
	)
	return res, nil
}

// writeReports produces the cross-year outputs: summary CSV, top-frequency
// tables and the consolidated workbook.
func (r *Runner) writeReports(ctx context.Context, summary *RunSummary) error {
	if len(summary.Tables) == 0 {
		r.logger.WarnContext(ctx, "no year tables produced, skipping cross-year reports")
		return nil
	}

	ctx, span := startSpan(ctx, "pipeline.reports")
	var err error
	defer func() { endSpan(span, err) }()

	summaryPath := filepath.Join(r.cfg.Paths.ReportsDir, config.SummaryFileName)
	if err = r.csv.WriteTable(summaryPath, report.SummaryHeaders(), report.SummaryRecords(summary.Summary)); err != nil {
		return err
	}

	byEffective, byConstraint := report.TopFrequency(summary.Tables, config.TopPerYear, config.TopOverall)
	effectivePath := filepath.Join(r.cfg.Paths.ReportsDir, config.FrequencyEffectiveFile)
	if err = r.csv.WriteTable(effectivePath, report.FrequencyHeaders(), report.FrequencyRecords(byEffective)); err != nil {
		return err
	}
	constraintPath := filepath.Join(r.cfg.Paths.ReportsDir, config.FrequencyConstraintFile)
	if err = r.csv.WriteTable(constraintPath, report.FrequencyHeaders(), report.FrequencyRecords(byConstraint)); err != nil {
		return err
	}

	// Proportions are computed on the undirected tables, one per year.
	var bothTables []report.YearTable
	for _, t := range summary.Tables {
		if t.Direction == network.Both.String() {
			bothTables = append(bothTables, t)
		}
	}
	var effectiveShares, constraintShares []report.ProportionRow
	if len(bothTables) > 0 {
		effectiveShares = report.MetricProportions(bothTables, byEffective,
			func(m structural.NodeMetrics) float64 { return m.EffectiveSize })
		constraintShares = report.MetricProportions(bothTables, byConstraint,
			func(m structural.NodeMetrics) float64 { return m.Constraint })
		path := filepath.Join(r.cfg.Paths.ReportsDir, config.ProportionEffectiveFile)
		if err = r.csv.WriteTable(path, report.ProportionHeaders(), report.ProportionRecords(effectiveShares)); err != nil {
			return err
		}
		path = filepath.Join(r.cfg.Paths.ReportsDir, config.ProportionConstraintFile)
		if err = r.csv.WriteTable(path, report.ProportionHeaders(), report.ProportionRecords(constraintShares)); err != nil {
			return err
		}
	} else {
		r.logger.WarnContext(ctx, "no undirected tables, skipping proportion reports")
	}

	wb := exporter.NewWorkbook()
	if err = wb.AddTableSheet("Summary", report.SummaryHeaders(), report.SummaryRecords(summary.Summary)); err != nil {
		return err
	}
	if err = wb.AddTableSheet("Top_EffectiveSize", report.FrequencyHeaders(), report.FrequencyRecords(byEffective)); err != nil {
		return err
	}
	if err = wb.AddTableSheet("Top_Constraint", report.FrequencyHeaders(), report.FrequencyRecords(byConstraint)); err != nil {
		return err
	}
	if len(effectiveShares) > 0 {
		if err = wb.AddTableSheet("Proportion_EffectiveSize", report.ProportionHeaders(), report.ProportionRecords(effectiveShares)); err != nil {
			return err
		}
		if err = wb.AddTableSheet("Proportion_Constraint", report.ProportionHeaders(), report.ProportionRecords(constraintShares)); err != nil {
			return err
		}
	}
	for _, t := range summary.Tables {
		sheet := fmt.Sprintf("%s_%d", t.Direction, t.Year)
		if err = wb.AddMetricsSheet(sheet, t.Metrics); err != nil {
			return err
		}
	}
	return wb.Save(filepath.Join(r.cfg.Paths.ReportsDir, config.WorkbookFileName))
}
