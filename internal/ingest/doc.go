// Package ingest reads the raw trade CSVs, weighted edge tables and
// adjacency matrices that feed the analysis core.
//
// Source files come from multiple statistical portals and arrive in mixed
// encodings (UTF-8 with or without BOM, GBK/GB2312), so every reader runs
// the same detection chain before parsing. Row cleaning happens here:
// whitespace trimming, the netWgt column rename, and dropping of
// non-positive volumes and self-pairs. The computation packages downstream
// assume cleaned input.
package ingest
