package pmi

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Weighter computes the PMI matrix and normalized edge weights for one
// year's trade edge list. It carries no state between calls; every
// invocation is an independent, deterministic computation.
type Weighter struct {
	logger *slog.Logger
}

// NewWeighter creates a PMI edge weighter.
func NewWeighter(logger *slog.Logger) *Weighter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Weighter{logger: logger}
}

// intensities aggregates the per-country and per-pair trade intensity
// tables from the raw edge list. Each directed edge adds its volume to both
// endpoint countries and once to its unordered pair.
type intensities struct {
	node      map[string]float64
	pair      map[pairKey]float64
	totalNode float64
	totalPair float64
}

func aggregateIntensities(edges []TradeEdge) intensities {
	in := intensities{
		node: make(map[string]float64),
		pair: make(map[pairKey]float64),
	}
	for _, e := range edges {
		in.node[e.Reporter] += e.Volume
		in.node[e.Partner] += e.Volume
		in.pair[newPairKey(e.Reporter, e.Partner)] += e.Volume
	}
	for _, v := range in.node {
		in.totalNode += v
	}
	for _, v := range in.pair {
		in.totalPair += v
	}
	return in
}

// ComputeWeightedEdges builds the full pairwise PMI matrix over every
// observed country and derives one weighted edge per input trade edge,
// deduplicated on the first occurrence of each ordered (source, target)
// pair. An empty edge list yields an empty matrix and no edges.
//
// The min-max normalization range is taken over all n² matrix cells,
// including the zero diagonal and non-observed pairs. On sparse networks
// the zeros compress the normalized range; this matches the published
// methodology and is kept for reproducibility.
func (w *Weighter) ComputeWeightedEdges(ctx context.Context, edges []TradeEdge) (*Matrix, []WeightedEdge) {
	in := aggregateIntensities(edges)

	countries := make([]string, 0, len(in.node))
	for c := range in.node {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	index := make(map[string]int, len(countries))
	for i, c := range countries {
		index[c] = i
	}

	matrix := &Matrix{countries: countries, index: index}
	if len(countries) == 0 {
		w.logger.InfoContext(ctx, "no trade edges, PMI matrix is empty")
		return matrix, nil
	}

	w.logger.InfoContext(ctx, "aggregated trade intensity",
		"countries", len(countries),
		"pairs", len(in.pair),
		"total_node_intensity", in.totalNode,
		"total_pair_intensity", in.totalPair,
	)

	n := len(countries)
	vals := mat.NewDense(n, n, nil)
	for i, exp := range countries {
		for j, imp := range countries {
			if i == j {
				continue
			}
			co := in.pair[newPairKey(exp, imp)]

			var pXY, pExp, pImp float64
			if in.totalPair != 0 {
				pXY = co / in.totalPair
			}
			if in.totalNode != 0 {
				pExp = in.node[exp] / in.totalNode
				pImp = in.node[imp] / in.totalNode
			}

			// An unobserved pair is neutral (0), never -Inf.
			if pXY == 0 || pExp*pImp == 0 {
				continue
			}
			vals.Set(i, j, math.Log2(pXY/(pExp*pImp)))
		}
	}
	matrix.vals = vals

	minPMI := mat.Min(vals)
	maxPMI := mat.Max(vals)
	w.logger.InfoContext(ctx, "computed PMI matrix",
		"min_pmi", minPMI,
		"max_pmi", maxPMI,
	)

	seen := make(map[pairOrdered]struct{}, len(edges))
	weighted := make([]WeightedEdge, 0, len(edges))
	for _, e := range edges {
		// Exporting partner is the source, importing reporter the target.
		src, dst := e.Partner, e.Reporter
		key := pairOrdered{src, dst}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		value := vals.At(index[src], index[dst])
		var weight float64
		if maxPMI != minPMI {
			weight = (value - minPMI) / (maxPMI - minPMI)
		}
		weighted = append(weighted, WeightedEdge{
			Source: src,
			Target: dst,
			Weight: round4(weight),
			RawPMI: round4(value),
			Volume: e.Volume,
		})
	}

	w.logger.InfoContext(ctx, "built weighted edge table",
		"input_edges", len(edges),
		"deduplicated_edges", len(weighted),
	)
	return matrix, weighted
}

type pairOrdered struct {
	src, dst string
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
