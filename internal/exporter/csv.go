package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"tradenet/internal/pmi"
	"tradenet/internal/structural"
)

// CSVWriter writes analysis tables as CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// writeCSV writes headers and records to path, creating the parent
// directory and prefixing a UTF-8 BOM for Excel compatibility.
func (w *CSVWriter) writeCSV(path string, headers []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	if err := writer.Error(); err != nil {
		return err
	}

	w.logger.Info("wrote CSV file", "path", path, "records", len(records))
	return nil
}

// WriteTable writes an arbitrary headers-plus-records table.
func (w *CSVWriter) WriteTable(path string, headers []string, records [][]string) error {
	return w.writeCSV(path, headers, records)
}

// WritePMIMatrix writes the dense PMI matrix with country labels on both
// axes.
func (w *CSVWriter) WritePMIMatrix(m *pmi.Matrix, path string) error {
	countries := m.Countries()
	headers := append([]string{""}, countries...)
	records := make([][]string, 0, len(countries))
	for i, country := range countries {
		row := make([]string, 0, len(countries)+1)
		row = append(row, country)
		for j := range countries {
			row = append(row, formatMetric(m.At(i, j)))
		}
		records = append(records, row)
	}
	return w.writeCSV(path, headers, records)
}

// WriteEdgeTable writes the weighted edge list in Gephi-compatible column
// order.
func (w *CSVWriter) WriteEdgeTable(edges []pmi.WeightedEdge, path string) error {
	headers := []string{"source", "target", "weight", "raw_pmi", "trade_volume"}
	records := make([][]string, 0, len(edges))
	for _, e := range edges {
		records = append(records, []string{
			e.Source,
			e.Target,
			formatMetric(e.Weight),
			formatMetric(e.RawPMI),
			formatMetric(e.Volume),
		})
	}
	return w.writeCSV(path, headers, records)
}

// WriteAdjacency writes a labeled square adjacency matrix.
func (w *CSVWriter) WriteAdjacency(adj *mat.Dense, countries []string, path string) error {
	r, c := adj.Dims()
	if r != c || r != len(countries) {
		return fmt.Errorf("write adjacency: %dx%d matrix with %d countries", r, c, len(countries))
	}
	headers := append([]string{""}, countries...)
	records := make([][]string, 0, r)
	for i, country := range countries {
		row := make([]string, 0, c+1)
		row = append(row, country)
		for j := 0; j < c; j++ {
			row = append(row, formatMetric(adj.At(i, j)))
		}
		records = append(records, row)
	}
	return w.writeCSV(path, headers, records)
}

// WriteMetrics writes a structural hole metrics table. NaN values become
// empty cells.
func (w *CSVWriter) WriteMetrics(metrics []structural.NodeMetrics, path string) error {
	records := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		records = append(records, metricsRecord(m))
	}
	return w.writeCSV(path, metricsHeaders(), records)
}

func metricsHeaders() []string {
	return []string{
		"Country",
		"Degree",
		"EffectiveSize",
		"Efficiency",
		"Constraint",
		"Hierarchy",
		"Constraint_Rank",
		"EffectiveSize_Rank",
	}
}

func metricsRecord(m structural.NodeMetrics) []string {
	return []string{
		m.Country,
		formatInt(m.Degree),
		formatMetric(m.EffectiveSize),
		formatMetric(m.Efficiency),
		formatMetric(m.Constraint),
		formatMetric(m.Hierarchy),
		formatInt(m.ConstraintRank),
		formatInt(m.EffectiveSizeRank),
	}
}
