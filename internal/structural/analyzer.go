package structural

import (
	"context"
	"log/slog"
	"math"

	"tradenet/internal/network"
)

// Analyzer computes structural hole metrics over a weighted graph. It is
// stateless; every Compute call is independent.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates a structural hole analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Compute returns one NodeMetrics entry per graph node. The returned slice
// is sorted by constraint ascending (NaN last, original node order breaking
// ties) and carries both rank columns filled in.
func (a *Analyzer) Compute(ctx context.Context, g *network.Graph) []NodeMetrics {
	n := g.Len()

	// Neighbor lists and per-node weight totals are reused across the
	// indirect-influence terms of every other node, so build them once.
	nbrs := make([][]int, n)
	totals := make([]float64, n)
	isolated := 0
	for i := 0; i < n; i++ {
		nbrs[i] = g.Neighbors(i)
		totals[i] = g.TotalWeight(i)
		if len(nbrs[i]) == 0 {
			isolated++
		}
	}
	if isolated > 0 {
		a.logger.InfoContext(ctx, "graph has isolated nodes",
			"direction", g.Direction().String(),
			"isolated", isolated,
		)
	}

	results := make([]NodeMetrics, 0, n)
	for v := 0; v < n; v++ {
		results = append(results, a.nodeMetrics(g, v, nbrs, totals))
	}

	rank(results)
	a.logger.InfoContext(ctx, "computed structural hole metrics",
		"direction", g.Direction().String(),
		"nodes", n,
		"edges", g.EdgeCount(),
	)
	return results
}

func (a *Analyzer) nodeMetrics(g *network.Graph, v int, nbrs [][]int, totals []float64) NodeMetrics {
	nan := math.NaN()
	neighbors := nbrs[v]

	if len(neighbors) == 0 {
		return NodeMetrics{
			Country:       g.Country(v),
			Degree:        0,
			EffectiveSize: nan,
			Efficiency:    nan,
			Constraint:    nan,
			Hierarchy:     nan,
		}
	}

	total := totals[v]
	if total == 0 {
		return NodeMetrics{
			Country:       g.Country(v),
			Degree:        len(neighbors),
			EffectiveSize: 0,
			Efficiency:    0,
			Constraint:    nan,
			Hierarchy:     nan,
		}
	}

	// Proportional investment of v in each neighbor.
	p := make([]float64, len(neighbors))
	for jx, j := range neighbors {
		p[jx] = g.Weight(v, j) / total
	}

	// Constraint: squared direct-plus-indirect investment per neighbor.
	// The indirect term routes influence v -> q -> j through every other
	// neighbor q that itself points at j.
	terms := make([]float64, len(neighbors))
	var constraint float64
	for jx, j := range neighbors {
		direct := p[jx]
		var indirect float64
		for qx, q := range neighbors {
			if q == j {
				continue
			}
			if g.HasEdge(q, j) && totals[q] > 0 {
				indirect += p[qx] * (g.Weight(q, j) / totals[q])
			}
		}
		c := direct + indirect
		terms[jx] = c * c
		constraint += terms[jx]
	}

	// Effective size: each neighbor contributes one minus its redundancy,
	// where redundancy counts the other neighbors it is connected to in
	// either direction.
	size := float64(len(neighbors))
	var effectiveSize float64
	for _, j := range neighbors {
		redundancy := 0
		for _, q := range neighbors {
			if q != j && (g.HasEdge(j, q) || g.HasEdge(q, j)) {
				redundancy++
			}
		}
		effectiveSize += 1 - float64(redundancy)/size
	}
	efficiency := effectiveSize / size

	// Hierarchy: entropy-like concentration of the constraint across
	// neighbors, normalized to roughly [0,1]. Needs at least two valid
	// terms to be meaningful.
	var acc float64
	validPairs := 0
	for jx := range neighbors {
		if constraint > 0 && terms[jx] > 0 {
			ratio := terms[jx] / constraint
			acc += ratio * math.Log(ratio)
			validPairs++
		}
	}
	hierarchy := nan
	if validPairs > 1 && constraint > 0 && acc < 0 {
		m := float64(validPairs)
		hierarchy = -acc / (m * math.Log(m))
	}

	return NodeMetrics{
		Country:       g.Country(v),
		Degree:        len(neighbors),
		EffectiveSize: round4(effectiveSize),
		Efficiency:    round4(efficiency),
		Constraint:    round4(constraint),
		Hierarchy:     round4(hierarchy),
	}
}

func round4(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*1e4) / 1e4
}
