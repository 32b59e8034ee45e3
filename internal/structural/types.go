package structural

import "math"

// NodeMetrics holds the structural hole indicators for one country. Float
// metrics use NaN as the "not computable" sentinel; a zero is always a
// genuinely computed value.
type NodeMetrics struct {
	Country       string
	Degree        int
	EffectiveSize float64
	Efficiency    float64
	Constraint    float64
	Hierarchy     float64

	// ConstraintRank ranks by constraint ascending (1 = least constrained,
	// richest in structural holes); NaN constraints rank last.
	ConstraintRank int
	// EffectiveSizeRank ranks by effective size descending with ties
	// sharing the minimum rank; NaN sizes rank after all valid values.
	EffectiveSizeRank int
}

// Valid reports whether the node produced a computable constraint.
func (nm NodeMetrics) Valid() bool {
	return !math.IsNaN(nm.Constraint)
}
