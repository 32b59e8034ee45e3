package config

import "fmt"

// Application constants shared across the pipeline.
const (
	AppName    = "Trade Network Pulse"
	AppVersion = "1.0.0"

	// MetricPrecision is the number of decimal places metric values are
	// rounded to for reporting.
	MetricPrecision = 4

	// TopPerYear is how many countries each yearly top list keeps when
	// counting cross-year frequencies.
	TopPerYear = 20
	// TopOverall is how many countries the cross-year frequency report
	// shows.
	TopOverall = 10
)

// File name patterns for per-year inputs and outputs.
const (
	RawDataFilePattern      = "%d_data.csv"
	EdgeTableFilePattern    = "%d_Wij_Valid_Trade_Edges.csv"
	PMIMatrixFilePattern    = "%d_Raw_PMI_Matrix.csv"
	AdjacencyFilePattern    = "Trade_Weighted_Adjacency_Matrix_%d.csv"
	MetricsFilePattern      = "Structural_Holes_%s_%d.csv" // direction, year
	SummaryFileName         = "Structural_Holes_Summary.csv"
	WorkbookFileName        = "Structural_Holes_Report.xlsx"
	FrequencyEffectiveFile  = "Top_Frequency_EffectiveSize.csv"
	FrequencyConstraintFile = "Top_Frequency_Constraint.csv"

	// Per-year metric shares of the frequency-based top countries.
	ProportionEffectiveFile  = "Top_Proportion_EffectiveSize.csv"
	ProportionConstraintFile = "Top_Proportion_Constraint.csv"
)

// RawDataFile returns the raw trade CSV name for a year.
func RawDataFile(year int) string { return fmt.Sprintf(RawDataFilePattern, year) }

// EdgeTableFile returns the weighted edge table name for a year.
func EdgeTableFile(year int) string { return fmt.Sprintf(EdgeTableFilePattern, year) }

// PMIMatrixFile returns the PMI matrix name for a year.
func PMIMatrixFile(year int) string { return fmt.Sprintf(PMIMatrixFilePattern, year) }

// AdjacencyFile returns the adjacency matrix name for a year.
func AdjacencyFile(year int) string { return fmt.Sprintf(AdjacencyFilePattern, year) }

// MetricsFile returns the structural holes table name for a direction and
// year.
func MetricsFile(direction string, year int) string {
	return fmt.Sprintf(MetricsFilePattern, direction, year)
}
