// Package exporter writes the analysis outputs: PMI matrices, weighted
// edge tables, adjacency matrices and structural hole metrics as CSV, plus
// a consolidated XLSX workbook for the cross-year report.
//
// CSV files are written with a UTF-8 BOM so Excel opens country names
// correctly. NaN metric values are written as empty cells, matching how the
// rest of the toolchain distinguishes "not computable" from zero.
package exporter
