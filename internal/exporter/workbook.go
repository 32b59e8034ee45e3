package exporter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tradenet/internal/structural"
)

// Workbook accumulates sheets for the consolidated XLSX report.
type Workbook struct {
	file   *excelize.File
	sheets int
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AddMetricsSheet adds a structural hole metrics table as a named sheet.
func (wb *Workbook) AddMetricsSheet(name string, metrics []structural.NodeMetrics) error {
	if err := wb.addSheet(name); err != nil {
		return err
	}
	if err := wb.writeRow(name, 1, toCells(metricsHeaders())); err != nil {
		return err
	}
	for i, m := range metrics {
		cells := []interface{}{
			m.Country,
			m.Degree,
			metricCell(m.EffectiveSize),
			metricCell(m.Efficiency),
			metricCell(m.Constraint),
			metricCell(m.Hierarchy),
			m.ConstraintRank,
			m.EffectiveSizeRank,
		}
		if err := wb.writeRow(name, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// AddTableSheet adds an arbitrary headers-plus-rows table as a named sheet.
func (wb *Workbook) AddTableSheet(name string, headers []string, rows [][]string) error {
	if err := wb.addSheet(name); err != nil {
		return err
	}
	if err := wb.writeRow(name, 1, toCells(headers)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := wb.writeRow(name, i+2, toCells(row)); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to path, creating the parent directory. The
// default empty sheet excelize starts with is removed first.
func (wb *Workbook) Save(path string) error {
	if wb.sheets == 0 {
		return fmt.Errorf("save workbook: no sheets added")
	}
	if err := wb.file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := wb.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return wb.file.Close()
}

func (wb *Workbook) addSheet(name string) error {
	if _, err := wb.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	wb.sheets++
	return nil
}

func (wb *Workbook) writeRow(sheet string, row int, cells []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.file.SetSheetRow(sheet, ref, &cells); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// metricCell maps NaN to an empty cell so spreadsheets show a blank, not a
// textual NaN.
func metricCell(v float64) interface{} {
	if math.IsNaN(v) {
		return ""
	}
	return v
}
