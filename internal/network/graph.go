package network

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyNodeSet is returned when a graph is built with no countries.
	ErrEmptyNodeSet = errors.New("network: empty node set")
)

// Graph is a fixed-node weighted graph over countries. Edge weights are
// nonnegative; the diagonal is always zero (no self-loops). Under the Both
// direction the adjacency is symmetric and the graph is undirected; under
// Outgoing/Incoming it stays directed.
type Graph struct {
	countries []string
	index     map[string]int
	adj       *mat.Dense
	dir       Direction
}

// NewGraph builds a graph from a square adjacency matrix and its matching
// ordered country list, collapsed per the given direction:
//
//   - Outgoing: edge(i,j) = matrix[i][j]
//   - Incoming: edge(i,j) = matrix[j][i]
//   - Both:     edge(i,j) = (matrix[i][j] + matrix[j][i]) / 2
//
// The diagonal is forced to zero in every mode. A non-square matrix, a
// country list of mismatched length, or an empty node set is a precondition
// violation and returns an error.
func NewGraph(adj *mat.Dense, countries []string, dir Direction) (*Graph, error) {
	if adj == nil || len(countries) == 0 {
		return nil, ErrEmptyNodeSet
	}
	r, c := adj.Dims()
	if r != c {
		return nil, fmt.Errorf("network: adjacency matrix is %dx%d, want square", r, c)
	}
	if len(countries) != r {
		return nil, fmt.Errorf("network: %d countries for a %dx%d matrix", len(countries), r, c)
	}

	m := mat.NewDense(r, r, nil)
	switch dir {
	case Outgoing:
		m.Copy(adj)
	case Incoming:
		m.Copy(adj.T())
	case Both:
		m.Add(adj, adj.T())
		m.Scale(0.5, m)
	default:
		return nil, fmt.Errorf("network: unknown direction %d", int(dir))
	}
	for i := 0; i < r; i++ {
		m.Set(i, i, 0)
	}

	index := make(map[string]int, len(countries))
	names := make([]string, len(countries))
	copy(names, countries)
	for i, c := range names {
		index[c] = i
	}

	return &Graph{countries: names, index: index, adj: m, dir: dir}, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.countries) }

// Countries returns the ordered node list. The returned slice is shared and
// must not be modified.
func (g *Graph) Countries() []string { return g.countries }

// Country returns the name of node i.
func (g *Graph) Country(i int) string { return g.countries[i] }

// Index returns the node index for a country name.
func (g *Graph) Index(country string) (int, bool) {
	i, ok := g.index[country]
	return i, ok
}

// Direction reports the direction policy the graph was built with.
func (g *Graph) Direction() Direction { return g.dir }

// Weight returns the edge weight from i to j, 0 when no edge exists.
func (g *Graph) Weight(i, j int) float64 {
	if i == j {
		return 0
	}
	return g.adj.At(i, j)
}

// HasEdge reports whether a positive-weight edge runs from i to j.
func (g *Graph) HasEdge(i, j int) bool { return g.Weight(i, j) > 0 }

// Neighbors returns the indices of all nodes j with a positive-weight edge
// from i, in ascending index order. Under Both the adjacency is symmetric,
// so this is also the full undirected neighborhood.
func (g *Graph) Neighbors(i int) []int {
	var nbrs []int
	for j := 0; j < len(g.countries); j++ {
		if j != i && g.adj.At(i, j) > 0 {
			nbrs = append(nbrs, j)
		}
	}
	return nbrs
}

// TotalWeight returns the sum of edge weights from i to its neighbors.
func (g *Graph) TotalWeight(i int) float64 {
	var total float64
	for j := 0; j < len(g.countries); j++ {
		if j != i {
			if w := g.adj.At(i, j); w > 0 {
				total += w
			}
		}
	}
	return total
}

// EdgeCount returns the number of directed positive-weight edges. For a Both
// graph each undirected edge is counted twice (once per direction).
func (g *Graph) EdgeCount() int {
	n := len(g.countries)
	count := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && g.adj.At(i, j) > 0 {
				count++
			}
		}
	}
	return count
}
