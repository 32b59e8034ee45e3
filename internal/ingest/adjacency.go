package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"tradenet/internal/pmi"
)

// BuildAdjacency converts a weighted edge table into a dense directed
// adjacency matrix over the sorted union of all source and target
// countries. Cell [i][j] holds the weight of the i -> j edge, 0 when no
// edge exists.
func BuildAdjacency(edges []pmi.WeightedEdge) (*mat.Dense, []string, error) {
	set := make(map[string]struct{})
	for _, e := range edges {
		set[e.Source] = struct{}{}
		set[e.Target] = struct{}{}
	}
	if len(set) == 0 {
		return nil, nil, fmt.Errorf("build adjacency: no countries in edge table")
	}

	countries := make([]string, 0, len(set))
	for c := range set {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	index := make(map[string]int, len(countries))
	for i, c := range countries {
		index[c] = i
	}

	adj := mat.NewDense(len(countries), len(countries), nil)
	for _, e := range edges {
		adj.Set(index[e.Source], index[e.Target], e.Weight)
	}
	return adj, countries, nil
}

// ReadAdjacency loads an adjacency matrix CSV written by the exporter: the
// header carries the column countries, each data row starts with its row
// country label. The matrix must be square with matching labels.
func ReadAdjacency(path string) (*mat.Dense, []string, error) {
	data, _, err := DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}
	records, err := parseCSV(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("parse %s: no matrix rows", path)
	}

	header := records[0]
	countries := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		countries = append(countries, strings.TrimSpace(name))
	}
	n := len(countries)
	if n == 0 {
		return nil, nil, fmt.Errorf("parse %s: empty country header", path)
	}
	if len(records)-1 != n {
		return nil, nil, fmt.Errorf("parse %s: %d rows for %d columns, want square", path, len(records)-1, n)
	}

	adj := mat.NewDense(n, n, nil)
	for i, row := range records[1:] {
		if len(row) != n+1 {
			return nil, nil, fmt.Errorf("parse %s: row %d has %d cells, want %d", path, i+1, len(row), n+1)
		}
		if label := strings.TrimSpace(row[0]); label != countries[i] {
			return nil, nil, fmt.Errorf("parse %s: row label %q does not match column %q", path, label, countries[i])
		}
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parse %s: bad value at (%s, %s): %w", path, countries[i], countries[j], err)
			}
			adj.Set(i, j, v)
		}
	}
	return adj, countries, nil
}
