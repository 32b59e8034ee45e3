package exporter

import (
	"math"
	"strconv"
)

// formatMetric formats a float for CSV output. NaN is the "not computable"
// sentinel and becomes an empty cell; real values print with the shortest
// exact representation so 0.5625 stays 0.5625 and 1 stays 1.
func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
