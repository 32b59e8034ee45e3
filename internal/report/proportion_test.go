package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradenet/internal/structural"
)

func effectiveSizeOf(m structural.NodeMetrics) float64 { return m.EffectiveSize }

func TestMetricProportions(t *testing.T) {
	tables := []YearTable{
		// Out of year order on purpose.
		table(2014, "both",
			node("Austria", 6, 0.1),
			node("Chile", 2, 0.5),
		),
		table(2013, "both",
			node("Austria", 3, 0.2),
			node("Brazil", 1, 0.4),
		),
	}
	top := []CountryCount{
		{Country: "Austria", Count: 2},
		{Country: "Brazil", Count: 1},
	}

	rows := MetricProportions(tables, top, effectiveSizeOf)
	require.Len(t, rows, 4)

	// 2013: Austria 3 of 4, Brazil 1 of 4. 2014: Brazil is absent and
	// contributes nothing, so Austria holds the full total; Chile is not a
	// top country and never appears.
	assert.Equal(t, []ProportionRow{
		{Year: 2013, Country: "Austria", Proportion: 75},
		{Year: 2013, Country: "Brazil", Proportion: 25},
		{Year: 2014, Country: "Austria", Proportion: 100},
		{Year: 2014, Country: "Brazil", Proportion: 0},
	}, rows)
}

func TestMetricProportionsRounding(t *testing.T) {
	tables := []YearTable{
		table(2013, "both",
			node("Austria", 1, 0),
			node("Brazil", 2, 0),
		),
	}
	top := []CountryCount{
		{Country: "Austria", Count: 1},
		{Country: "Brazil", Count: 1},
	}

	rows := MetricProportions(tables, top, effectiveSizeOf)
	require.Len(t, rows, 2)
	assert.Equal(t, 33.33, rows[0].Proportion)
	assert.Equal(t, 66.67, rows[1].Proportion)
}

func TestMetricProportionsDegenerateTotals(t *testing.T) {
	nan := math.NaN()
	tables := []YearTable{
		// A non-computable value makes the whole year's total unusable.
		table(2013, "both",
			node("Austria", nan, nan),
			node("Brazil", 2, 0.4),
		),
		// A zero total likewise yields all-zero shares.
		table(2014, "both",
			node("Austria", 0, 0),
			node("Brazil", 0, 0),
		),
	}
	top := []CountryCount{
		{Country: "Austria", Count: 2},
		{Country: "Brazil", Count: 2},
	}

	for _, r := range MetricProportions(tables, top, effectiveSizeOf) {
		assert.Zero(t, r.Proportion)
	}
}

func TestProportionRecords(t *testing.T) {
	records := ProportionRecords([]ProportionRow{
		{Year: 2013, Country: "Austria", Proportion: 33.33},
	})
	require.Len(t, records, 1)
	assert.Equal(t, []string{"2013", "Austria", "33.33"}, records[0])
	assert.Len(t, ProportionHeaders(), len(records[0]))
}
