package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradenet/internal/config"
	"tradenet/internal/ingest"
)

func testConfig(t *testing.T, from, to int) *config.Config {
	t.Helper()
	return &config.Config{
		Years:      config.YearsConfig{From: from, To: to},
		Paths:      config.PathsConfig{DataDir: filepath.Join(t.TempDir(), "data"), ReportsDir: filepath.Join(t.TempDir(), "reports")},
		Batch:      config.BatchConfig{MaxConcurrency: 2, SkipMissing: true},
		Logging:    config.LoggingConfig{Level: "info", Format: "text"},
		Directions: []string{"outgoing", "incoming", "both"},
	}
}

func writeYearData(t *testing.T, cfg *config.Config, year int, csv string) {
	t.Helper()
	dir := filepath.Join(cfg.Paths.DataDir, strconv.Itoa(year))
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.RawDataFile(year)), []byte(csv), 0644))
}

const sampleCSV = "ReporterName,PartnerName,NetWeight\n" +
	"Austria,Brazil,120\n" +
	"Brazil,Austria,45\n" +
	"Chile,Austria,30\n" +
	"Austria,Chile,80\n" +
	"Brazil,Chile,10\n"

func TestRunProducesAllTables(t *testing.T) {
	cfg := testConfig(t, 2013, 2014)
	writeYearData(t, cfg, 2013, sampleCSV)
	writeYearData(t, cfg, 2014, sampleCSV)

	summary, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.YearsRun)
	assert.Empty(t, summary.YearsSkipped)
	// Two years times three directions.
	require.Len(t, summary.Tables, 6)
	assert.Len(t, summary.Summary, 6)
	assert.NotEmpty(t, summary.RunID)

	for _, year := range []int{2013, 2014} {
		yearDir := filepath.Join(cfg.Paths.ReportsDir, strconv.Itoa(year))
		assert.FileExists(t, filepath.Join(yearDir, config.PMIMatrixFile(year)))
		assert.FileExists(t, filepath.Join(yearDir, config.EdgeTableFile(year)))
		assert.FileExists(t, filepath.Join(yearDir, config.AdjacencyFile(year)))
		for _, dir := range cfg.Directions {
			assert.FileExists(t, filepath.Join(yearDir, config.MetricsFile(dir, year)))
		}
	}
	assert.FileExists(t, filepath.Join(cfg.Paths.ReportsDir, config.SummaryFileName))
	assert.FileExists(t, filepath.Join(cfg.Paths.ReportsDir, config.FrequencyEffectiveFile))
	assert.FileExists(t, filepath.Join(cfg.Paths.ReportsDir, config.FrequencyConstraintFile))
	assert.FileExists(t, filepath.Join(cfg.Paths.ReportsDir, config.ProportionEffectiveFile))
	assert.FileExists(t, filepath.Join(cfg.Paths.ReportsDir, config.ProportionConstraintFile))
	assert.FileExists(t, filepath.Join(cfg.Paths.ReportsDir, config.WorkbookFileName))

	// The exported adjacency matrix loads back square with the observed
	// country set.
	adj, countries, err := ingest.ReadAdjacency(filepath.Join(cfg.Paths.ReportsDir, "2013", config.AdjacencyFile(2013)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Austria", "Brazil", "Chile"}, countries)
	r, c := adj.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
}

func TestRunSkipsMissingYears(t *testing.T) {
	cfg := testConfig(t, 2013, 2015)
	writeYearData(t, cfg, 2014, sampleCSV)

	summary, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.YearsRun)
	assert.Equal(t, []int{2013, 2015}, summary.YearsSkipped)
	assert.Len(t, summary.Tables, 3)
}

func TestRunMissingYearFatalWhenConfigured(t *testing.T) {
	cfg := testConfig(t, 2013, 2013)
	cfg.Batch.SkipMissing = false

	_, err := NewRunner(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year 2013")
}

func TestRunMalformedInputFails(t *testing.T) {
	cfg := testConfig(t, 2013, 2013)
	writeYearData(t, cfg, 2013, "WrongColumn,Other\n1,2\n")

	_, err := NewRunner(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReporterName")
}

func TestRunAllRowsDroppedFails(t *testing.T) {
	cfg := testConfig(t, 2013, 2013)
	writeYearData(t, cfg, 2013, "ReporterName,PartnerName,NetWeight\nAustria,Austria,5\n")

	_, err := NewRunner(cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid trade edges")
}

func TestRunNoYearsProduced(t *testing.T) {
	cfg := testConfig(t, 2013, 2013)

	summary, err := NewRunner(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.YearsRun)
	assert.Equal(t, []int{2013}, summary.YearsSkipped)
	assert.Empty(t, summary.Tables)
	// No tables means no cross-year reports get written.
	assert.NoFileExists(t, filepath.Join(cfg.Paths.ReportsDir, config.SummaryFileName))
}
