// Package structural computes Burt's structural hole indicators (effective
// size, efficiency, constraint, hierarchy) for every node of a weighted
// trade graph.
//
// Degenerate network positions are not errors: an isolated node, a node
// whose incident weights sum to zero, or a node with too few valid
// hierarchy terms all produce defined sentinel outputs. NaN means "not
// computable" and is distinct from a computed zero; downstream ranking and
// reporting rely on that distinction.
package structural
