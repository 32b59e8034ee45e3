// Package report aggregates per-year structural hole tables into cross-year
// summaries: which countries recur in the top ranks, and how the overall
// constraint level moves per year and direction.
package report

import (
	"math"
	"sort"

	"tradenet/internal/structural"
)

// YearTable is one year's ranked metrics table for a single direction.
type YearTable struct {
	Year      int
	Direction string
	Metrics   []structural.NodeMetrics
}

// SummaryRow condenses one (year, direction) table.
type SummaryRow struct {
	Year          int
	Direction     string
	TopCountry    string
	MinConstraint float64
	AvgConstraint float64
	NumCountries  int
	NumValid      int
}

// CountryCount is a country's appearance count across yearly top lists.
type CountryCount struct {
	Country string
	Count   int
}

// Summarize produces one summary row per table. Tables are expected in
// ranked order (constraint ascending, as the analyzer returns them); the
// top country is the first row with a computable constraint. Tables with no
// valid rows are skipped.
func Summarize(tables []YearTable) []SummaryRow {
	rows := make([]SummaryRow, 0, len(tables))
	for _, t := range tables {
		var (
			top   string
			min   float64
			sum   float64
			valid int
		)
		for _, m := range t.Metrics {
			if math.IsNaN(m.Constraint) {
				continue
			}
			if valid == 0 {
				top = m.Country
				min = m.Constraint
			}
			sum += m.Constraint
			valid++
		}
		if valid == 0 {
			continue
		}
		rows = append(rows, SummaryRow{
			Year:          t.Year,
			Direction:     t.Direction,
			TopCountry:    top,
			MinConstraint: min,
			AvgConstraint: sum / float64(valid),
			NumCountries:  len(t.Metrics),
			NumValid:      valid,
		})
	}
	return rows
}

// TopFrequency counts, across all tables, how often each country appears in
// the per-year top lists: topPerYear countries by effective size descending
// and topPerYear by constraint ascending. NaN values never qualify. The
// returned lists are sorted by count descending, country name breaking
// ties, truncated to topN entries.
func TopFrequency(tables []YearTable, topPerYear, topN int) (byEffectiveSize, byConstraint []CountryCount) {
	effective := make(map[string]int)
	constraint := make(map[string]int)

	for _, t := range tables {
		for _, m := range topByEffectiveSize(t.Metrics, topPerYear) {
			effective[m.Country]++
		}
		for _, m := range topByConstraint(t.Metrics, topPerYear) {
			constraint[m.Country]++
		}
	}
	return mostCommon(effective, topN), mostCommon(constraint, topN)
}

func topByEffectiveSize(metrics []structural.NodeMetrics, n int) []structural.NodeMetrics {
	valid := filterValid(metrics, func(m structural.NodeMetrics) bool {
		return !math.IsNaN(m.EffectiveSize)
	})
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].EffectiveSize > valid[j].EffectiveSize
	})
	return truncate(valid, n)
}

func topByConstraint(metrics []structural.NodeMetrics, n int) []structural.NodeMetrics {
	valid := filterValid(metrics, func(m structural.NodeMetrics) bool {
		return !math.IsNaN(m.Constraint)
	})
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Constraint < valid[j].Constraint
	})
	return truncate(valid, n)
}

func filterValid(metrics []structural.NodeMetrics, keep func(structural.NodeMetrics) bool) []structural.NodeMetrics {
	out := make([]structural.NodeMetrics, 0, len(metrics))
	for _, m := range metrics {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func truncate(metrics []structural.NodeMetrics, n int) []structural.NodeMetrics {
	if len(metrics) > n {
		return metrics[:n]
	}
	return metrics
}

func mostCommon(counts map[string]int, n int) []CountryCount {
	out := make([]CountryCount, 0, len(counts))
	for country, count := range counts {
		out = append(out, CountryCount{Country: country, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Country < out[j].Country
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
