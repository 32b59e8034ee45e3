package pmi

import (
	"gonum.org/v1/gonum/mat"
)

// TradeEdge is one cleaned directed trade record: the reporting (importing)
// country, its partner (exporting) country and the net traded volume.
// Upstream ingestion guarantees Volume > 0 and Reporter != Partner.
type TradeEdge struct {
	Reporter string
	Partner  string
	Volume   float64
}

// WeightedEdge is one directed edge of the PMI-weighted trade network. The
// exporting partner is the edge source and the importing reporter is the
// edge target, matching the flow of goods.
type WeightedEdge struct {
	Source string
	Target string
	// Weight is the min-max normalized PMI in [0,1], rounded to 4 decimals.
	Weight float64
	// RawPMI is the unnormalized PMI value, rounded to 4 decimals.
	RawPMI float64
	// Volume is the raw trade volume carried over from the input edge.
	Volume float64
}

// pairKey identifies an unordered country pair; both directed flows between
// two countries aggregate under the same key.
type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	if x <= y {
		return pairKey{x, y}
	}
	return pairKey{y, x}
}

// Matrix is the dense pairwise PMI matrix over the sorted set of observed
// countries. It is symmetric and its diagonal is zero.
type Matrix struct {
	countries []string
	index     map[string]int
	vals      *mat.Dense // nil when the country set is empty
}

// Countries returns the sorted country list indexing both matrix axes.
func (m *Matrix) Countries() []string { return m.countries }

// Len returns the matrix dimension.
func (m *Matrix) Len() int { return len(m.countries) }

// At returns the PMI value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.vals.At(i, j)
}

// Value returns the PMI value for an ordered (source, target) country pair,
// or false when either country is not in the matrix.
func (m *Matrix) Value(source, target string) (float64, bool) {
	i, ok := m.index[source]
	if !ok {
		return 0, false
	}
	j, ok := m.index[target]
	if !ok {
		return 0, false
	}
	return m.vals.At(i, j), true
}

// Dense exposes the underlying matrix for bulk consumers such as exporters.
// It is nil for an empty country set and must not be modified.
func (m *Matrix) Dense() *mat.Dense { return m.vals }
