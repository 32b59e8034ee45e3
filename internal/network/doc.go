// Package network provides the weighted country-to-country trade graph used
// by the structural hole analysis.
//
// The graph is backed by a dense adjacency matrix rather than a hash-based
// edge store: country counts are small (tens to low hundreds), the analysis
// loops over node pairs anyway, and a dense matrix makes the symmetric
// transpose-and-average collapse for the "both" direction trivial.
package network
