package structural

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tradenet/internal/network"
)

func mustGraph(t *testing.T, adj *mat.Dense, countries []string, dir network.Direction) *network.Graph {
	t.Helper()
	g, err := network.NewGraph(adj, countries, dir)
	require.NoError(t, err)
	return g
}

func metricsByCountry(metrics []NodeMetrics) map[string]NodeMetrics {
	out := make(map[string]NodeMetrics, len(metrics))
	for _, m := range metrics {
		out[m.Country] = m
	}
	return out
}

func TestComputeIsolatedNode(t *testing.T) {
	adj := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		1, 0, 0,
		0, 0, 0,
	})
	g := mustGraph(t, adj, []string{"A", "B", "Isolated"}, network.Both)

	metrics := NewAnalyzer(nil).Compute(context.Background(), g)
	byCountry := metricsByCountry(metrics)

	iso := byCountry["Isolated"]
	assert.Equal(t, 0, iso.Degree)
	assert.True(t, math.IsNaN(iso.EffectiveSize))
	assert.True(t, math.IsNaN(iso.Efficiency))
	assert.True(t, math.IsNaN(iso.Constraint))
	assert.True(t, math.IsNaN(iso.Hierarchy))
	assert.False(t, iso.Valid())

	// NaN constraint sorts worst, so the isolated node ranks last.
	assert.Equal(t, 3, iso.ConstraintRank)
	assert.Equal(t, 3, iso.EffectiveSizeRank)
}

func TestComputeDirectedChain(t *testing.T) {
	// A->B, B->C, A->C with unit weights, analyzed as a directed graph.
	adj := mat.NewDense(3, 3, []float64{
		0, 1, 1,
		0, 0, 1,
		0, 0, 0,
	})
	g := mustGraph(t, adj, []string{"A", "B", "C"}, network.Outgoing)

	metrics := NewAnalyzer(nil).Compute(context.Background(), g)
	byCountry := metricsByCountry(metrics)

	a := byCountry["A"]
	assert.Equal(t, 2, a.Degree)
	// Constraint: term for B is (0.5)^2, term for C is (0.5 + 0.5*1)^2.
	assert.InDelta(t, 1.25, a.Constraint, 1e-9)
	// B and C are connected, so each is redundant once.
	assert.InDelta(t, 1.0, a.EffectiveSize, 1e-9)
	assert.InDelta(t, 0.5, a.Efficiency, 1e-9)
	assert.InDelta(t, 0.361, a.Hierarchy, 1e-3)

	b := byCountry["B"]
	assert.Equal(t, 1, b.Degree)
	assert.InDelta(t, 1.0, b.Constraint, 1e-9)
	assert.InDelta(t, 1.0, b.EffectiveSize, 1e-9)
	assert.InDelta(t, 1.0, b.Efficiency, 1e-9)
	// A single valid term never yields a hierarchy value.
	assert.True(t, math.IsNaN(b.Hierarchy))

	c := byCountry["C"]
	assert.Equal(t, 0, c.Degree)
	assert.True(t, math.IsNaN(c.Constraint))

	// Ranked output: B (1.0) before A (1.25) before NaN C.
	assert.Equal(t, "B", metrics[0].Country)
	assert.Equal(t, "A", metrics[1].Country)
	assert.Equal(t, "C", metrics[2].Country)
	assert.Equal(t, []int{1, 2, 3}, []int{metrics[0].ConstraintRank, metrics[1].ConstraintRank, metrics[2].ConstraintRank})

	// A and B tie on effective size 1.0 and share the minimum rank.
	assert.Equal(t, 1, a.EffectiveSizeRank)
	assert.Equal(t, 1, b.EffectiveSizeRank)
	assert.Equal(t, 3, c.EffectiveSizeRank)
}

func TestComputeConstraintNonNegative(t *testing.T) {
	adj := mat.NewDense(4, 4, []float64{
		0, 0.2, 0.9, 0,
		0.4, 0, 0, 0.1,
		0, 0.7, 0, 0.3,
		0.5, 0, 0, 0,
	})
	countries := []string{"A", "B", "C", "D"}

	for _, dir := range network.AllDirections() {
		t.Run(dir.String(), func(t *testing.T) {
			g := mustGraph(t, adj, countries, dir)
			metrics := NewAnalyzer(nil).Compute(context.Background(), g)
			for _, m := range metrics {
				if !math.IsNaN(m.Constraint) {
					assert.GreaterOrEqual(t, m.Constraint, 0.0, "%s/%s", dir, m.Country)
				}
				if !math.IsNaN(m.Hierarchy) {
					assert.GreaterOrEqual(t, m.Hierarchy, 0.0, "%s/%s", dir, m.Country)
					assert.LessOrEqual(t, m.Hierarchy, 1.0+1e-9, "%s/%s", dir, m.Country)
				}
			}
		})
	}
}

func TestComputeRankPermutation(t *testing.T) {
	adj := mat.NewDense(4, 4, []float64{
		0, 1, 1, 0,
		1, 0, 1, 0,
		1, 1, 0, 0,
		0, 0, 0, 0,
	})
	g := mustGraph(t, adj, []string{"A", "B", "C", "Isolated"}, network.Both)

	metrics := NewAnalyzer(nil).Compute(context.Background(), g)

	seen := make(map[int]bool)
	for _, m := range metrics {
		seen[m.ConstraintRank] = true
	}
	for rank := 1; rank <= len(metrics); rank++ {
		assert.True(t, seen[rank], "missing constraint rank %d", rank)
	}
}
