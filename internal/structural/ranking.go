package structural

import (
	"math"
	"sort"
)

// rank sorts the metrics by constraint ascending (stable, NaN last) and
// fills in both rank columns in place.
func rank(results []NodeMetrics) {
	sort.SliceStable(results, func(i, j int) bool {
		return constraintSortKey(results[i].Constraint) < constraintSortKey(results[j].Constraint)
	})
	for i := range results {
		results[i].ConstraintRank = i + 1
	}

	// Effective size ranks descending with "min" tie handling: every tied
	// value gets the smallest rank of its tie group. NaN values form a
	// single tie group after all valid values.
	valid := 0
	for i := range results {
		if !math.IsNaN(results[i].EffectiveSize) {
			valid++
		}
	}
	for i := range results {
		v := results[i].EffectiveSize
		if math.IsNaN(v) {
			results[i].EffectiveSizeRank = valid + 1
			continue
		}
		greater := 0
		for j := range results {
			if w := results[j].EffectiveSize; !math.IsNaN(w) && w > v {
				greater++
			}
		}
		results[i].EffectiveSizeRank = greater + 1
	}
}

// constraintSortKey maps NaN to +Inf so not-computable nodes sort after
// every real constraint value.
func constraintSortKey(c float64) float64 {
	if math.IsNaN(c) {
		return math.Inf(1)
	}
	return c
}
