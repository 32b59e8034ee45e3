// Package pmi converts a raw trade edge list into PMI-normalized edge
// weights.
//
// Trade volume acts as the probability proxy: each country's intensity is
// the total volume touching it, each unordered country pair's intensity is
// the total volume traded between them. Pointwise mutual information then
// measures how much more two countries co-trade than independence would
// predict, and a min-max normalization over the full PMI matrix maps that
// onto a [0,1] edge weight usable by downstream graph analysis.
package pmi
