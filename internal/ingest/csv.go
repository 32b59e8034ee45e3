package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"tradenet/internal/pmi"
)

// Column names expected in raw trade CSVs. The legacy netWgt column is
// accepted as an alias for NetWeight.
const (
	colReporter  = "ReporterName"
	colPartner   = "PartnerName"
	colNetWeight = "NetWeight"
	colNetWgt    = "netWgt"
)

// ReadTradeEdges reads a raw trade CSV and returns the cleaned edge list.
// Rows with missing or non-positive volume and self-pairs are dropped;
// country identifiers are whitespace-trimmed.
func ReadTradeEdges(path string, logger *slog.Logger) ([]pmi.TradeEdge, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, encoding, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	logger.Info("read trade data file", "path", path, "encoding", encoding)

	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: file is empty", path)
	}

	header := records[0]
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if i, ok := cols[colNetWgt]; ok {
		if _, has := cols[colNetWeight]; !has {
			cols[colNetWeight] = i
			logger.Info("renamed legacy column", "from", colNetWgt, "to", colNetWeight)
		}
	}
	for _, required := range []string{colReporter, colPartner, colNetWeight} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("parse %s: missing column %q (have %v)", path, required, header)
		}
	}

	repIdx, parIdx, volIdx := cols[colReporter], cols[colPartner], cols[colNetWeight]
	edges := make([]pmi.TradeEdge, 0, len(records)-1)
	dropped := 0
	for _, row := range records[1:] {
		if len(row) <= repIdx || len(row) <= parIdx || len(row) <= volIdx {
			dropped++
			continue
		}
		reporter := strings.TrimSpace(row[repIdx])
		partner := strings.TrimSpace(row[parIdx])
		volume, err := strconv.ParseFloat(strings.TrimSpace(row[volIdx]), 64)
		if err != nil || volume <= 0 || reporter == "" || partner == "" || reporter == partner {
			dropped++
			continue
		}
		edges = append(edges, pmi.TradeEdge{Reporter: reporter, Partner: partner, Volume: volume})
	}

	logger.Info("cleaned trade records",
		"path", path,
		"total_rows", len(records)-1,
		"valid_edges", len(edges),
		"dropped", dropped,
	)
	return edges, nil
}

// ReadEdgeTable reads a previously exported weighted edge table. Column
// matching is case-insensitive; unparsable weights are coerced to zero so a
// partially hand-edited table still loads.
func ReadEdgeTable(path string) ([]pmi.WeightedEdge, error) {
	data, _, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: file is empty", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"source", "target", "weight"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("parse %s: missing column %q (have %v)", path, required, records[0])
		}
	}

	edges := make([]pmi.WeightedEdge, 0, len(records)-1)
	for _, row := range records[1:] {
		edge := pmi.WeightedEdge{
			Source: strings.TrimSpace(cell(row, cols["source"])),
			Target: strings.TrimSpace(cell(row, cols["target"])),
			Weight: coerceFloat(cell(row, cols["weight"])),
		}
		if edge.Source == "" || edge.Target == "" {
			continue
		}
		if i, ok := cols["raw_pmi"]; ok {
			edge.RawPMI = coerceFloat(cell(row, i))
		}
		if i, ok := cols["trade_volume"]; ok {
			edge.Volume = coerceFloat(cell(row, i))
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
