package network

import "fmt"

// Direction controls how the directed trade adjacency matrix is collapsed
// into the graph used for analysis.
type Direction int

const (
	// Outgoing keeps the matrix as-is: edge(i,j) is the flow from i to j.
	Outgoing Direction = iota
	// Incoming transposes the matrix: edge(i,j) is the flow from j to i.
	Incoming
	// Both averages the two directed weights into a single undirected edge.
	Both
)

// String returns the lowercase name used in output file names and config.
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// ParseDirection converts a config/CLI string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "outgoing":
		return Outgoing, nil
	case "incoming":
		return Incoming, nil
	case "both":
		return Both, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (want outgoing, incoming or both)", s)
	}
}

// AllDirections lists every supported direction in the order reports use.
func AllDirections() []Direction {
	return []Direction{Outgoing, Incoming, Both}
}
