package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"outgoing", Outgoing, false},
		{"incoming", Incoming, false},
		{"both", Both, false},
		{"sideways", 0, true},
		{"", 0, true},
		{"Both", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestNewGraphPreconditions(t *testing.T) {
	square := mat.NewDense(2, 2, []float64{0, 1, 2, 0})

	t.Run("nil matrix", func(t *testing.T) {
		_, err := NewGraph(nil, []string{"A"}, Outgoing)
		assert.ErrorIs(t, err, ErrEmptyNodeSet)
	})

	t.Run("empty country list", func(t *testing.T) {
		_, err := NewGraph(square, nil, Outgoing)
		assert.ErrorIs(t, err, ErrEmptyNodeSet)
	})

	t.Run("non-square matrix", func(t *testing.T) {
		rect := mat.NewDense(2, 3, nil)
		_, err := NewGraph(rect, []string{"A", "B"}, Outgoing)
		assert.Error(t, err)
	})

	t.Run("country list length mismatch", func(t *testing.T) {
		_, err := NewGraph(square, []string{"A", "B", "C"}, Outgoing)
		assert.Error(t, err)
	})
}

func TestNewGraphDirections(t *testing.T) {
	// A->B weight 4, B->A weight 2, A->C weight 1.
	adj := mat.NewDense(3, 3, []float64{
		0, 4, 1,
		2, 0, 0,
		0, 0, 0,
	})
	countries := []string{"A", "B", "C"}

	t.Run("outgoing keeps the matrix as-is", func(t *testing.T) {
		g, err := NewGraph(adj, countries, Outgoing)
		require.NoError(t, err)
		assert.Equal(t, 4.0, g.Weight(0, 1))
		assert.Equal(t, 2.0, g.Weight(1, 0))
		assert.Equal(t, 1.0, g.Weight(0, 2))
		assert.Equal(t, []int{1, 2}, g.Neighbors(0))
		assert.Equal(t, []int{0}, g.Neighbors(1))
		assert.Empty(t, g.Neighbors(2))
	})

	t.Run("incoming transposes", func(t *testing.T) {
		g, err := NewGraph(adj, countries, Incoming)
		require.NoError(t, err)
		assert.Equal(t, 2.0, g.Weight(0, 1))
		assert.Equal(t, 4.0, g.Weight(1, 0))
		assert.Equal(t, 0.0, g.Weight(0, 2))
		assert.Equal(t, 1.0, g.Weight(2, 0))
		assert.Equal(t, []int{0}, g.Neighbors(2))
	})

	t.Run("both averages and symmetrizes", func(t *testing.T) {
		g, err := NewGraph(adj, countries, Both)
		require.NoError(t, err)
		assert.Equal(t, 3.0, g.Weight(0, 1))
		assert.Equal(t, 3.0, g.Weight(1, 0))
		assert.Equal(t, 0.5, g.Weight(0, 2))
		assert.Equal(t, 0.5, g.Weight(2, 0))
		assert.Equal(t, []int{1, 2}, g.Neighbors(0))
		assert.Equal(t, []int{0}, g.Neighbors(2))
	})

	t.Run("original matrix is not modified", func(t *testing.T) {
		_, err := NewGraph(adj, countries, Both)
		require.NoError(t, err)
		assert.Equal(t, 4.0, adj.At(0, 1))
		assert.Equal(t, 2.0, adj.At(1, 0))
	})
}

func TestGraphDiagonalForcedZero(t *testing.T) {
	adj := mat.NewDense(2, 2, []float64{
		7, 1,
		1, 7,
	})
	for _, dir := range AllDirections() {
		t.Run(dir.String(), func(t *testing.T) {
			g, err := NewGraph(adj, []string{"A", "B"}, dir)
			require.NoError(t, err)
			assert.Equal(t, 0.0, g.Weight(0, 0))
			assert.Equal(t, 0.0, g.Weight(1, 1))
			assert.False(t, g.HasEdge(0, 0))
			assert.Equal(t, []int{1}, g.Neighbors(0))
		})
	}
}

func TestGraphAccessors(t *testing.T) {
	adj := mat.NewDense(2, 2, []float64{0, 2.5, 0, 0})
	g, err := NewGraph(adj, []string{"A", "B"}, Outgoing)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"A", "B"}, g.Countries())
	assert.Equal(t, "B", g.Country(1))

	i, ok := g.Index("B")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = g.Index("Z")
	assert.False(t, ok)

	assert.True(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(1, 0))
	assert.Equal(t, 2.5, g.TotalWeight(0))
	assert.Equal(t, 0.0, g.TotalWeight(1))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, Outgoing, g.Direction())
}
