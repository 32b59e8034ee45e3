package report

import (
	"math"
	"sort"

	"tradenet/internal/structural"
)

// ProportionRow is one country's share of a metric total within a year,
// restricted to the cross-year top countries.
type ProportionRow struct {
	Year    int
	Country string
	// Proportion is a percentage, rounded to 2 decimals.
	Proportion float64
}

// MetricProportions computes, per year, each top country's share of the
// group total for the given metric, in percent. A country absent from a
// year's table contributes 0; when a year's total is not positive or not
// computable, every share that year is 0. Tables are expected one per year;
// rows come back sorted by year, country name breaking ties.
func MetricProportions(tables []YearTable, top []CountryCount, value func(structural.NodeMetrics) float64) []ProportionRow {
	years := make([]YearTable, len(tables))
	copy(years, tables)
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	rows := make([]ProportionRow, 0, len(years)*len(top))
	for _, t := range years {
		values := make(map[string]float64, len(top))
		var total float64
		for _, c := range top {
			v := metricFor(t.Metrics, c.Country, value)
			values[c.Country] = v
			total += v
		}
		for _, c := range top {
			var p float64
			if total > 0 {
				p = round2(values[c.Country] / total * 100)
			}
			rows = append(rows, ProportionRow{Year: t.Year, Country: c.Country, Proportion: p})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Country < rows[j].Country
	})
	return rows
}

func metricFor(metrics []structural.NodeMetrics, country string, value func(structural.NodeMetrics) float64) float64 {
	for _, m := range metrics {
		if m.Country == country {
			return value(m)
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
