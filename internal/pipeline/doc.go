// Package pipeline orchestrates the per-year analysis batch: raw trade CSV
// ingestion, PMI edge weighting, adjacency construction, structural hole
// analysis per direction, and export of every intermediate and final table.
//
// Each (year, direction) run is an independent pure computation over its
// own input file, so years execute concurrently under a bounded errgroup
// with no shared mutable state beyond result collection.
package pipeline
