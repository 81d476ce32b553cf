// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workbook writes extracted tables to an .xlsx workbook: one sheet
// per table plus a combined ALL_TABLES sheet.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/docconv/pkg/types"
)

// AllTablesSheet is the name of the sheet that stacks every table.
const AllTablesSheet = "ALL_TABLES"

// Options controls workbook layout.
type Options struct {
	// IndexColumn labels the leading table-number column. Empty means
	// types.DefaultIndexColumn.
	IndexColumn string
}

// SheetName returns the sheet name for the i-th (1-based) table written.
func SheetName(i int) string {
	return fmt.Sprintf("Table_%d", i)
}

// Write saves tables to a new workbook at path, replacing any existing file.
//
// Sheet Table_<i> holds the i-th table: a bold header row starting with the
// index column label, then one row per data row starting with the table's
// source number. ALL_TABLES stacks every table's header and data rows, each
// tagged with the table number, so its row count is the sum of the
// per-table sheets' row counts.
func Write(path string, tables []types.ExtractedTable, opts Options) error {
	if len(tables) == 0 {
		return types.ErrNoTables
	}
	label := opts.IndexColumn
	if label == "" {
		label = types.DefaultIndexColumn
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	w := &sheetWriter{f: f, bold: bold}

	// The new file starts with one default sheet; it becomes Table_1.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName(1)); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	for i, tbl := range tables {
		name := SheetName(i + 1)
		if i > 0 {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", name, err)
			}
		}
		w.sheet, w.next = name, 1
		if err := w.header(label, tbl.Header); err != nil {
			return err
		}
		if err := w.data(tbl.Number, tbl.Rows); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(AllTablesSheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", AllTablesSheet, err)
	}
	w.sheet, w.next = AllTablesSheet, 1
	for _, tbl := range tables {
		if err := w.header(tbl.Number, tbl.Header); err != nil {
			return err
		}
		if err := w.data(tbl.Number, tbl.Rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// sheetWriter appends rows to one sheet at a time.
type sheetWriter struct {
	f     *excelize.File
	bold  int
	sheet string
	next  int // next 1-based row number
}

func (w *sheetWriter) header(tag any, cells []string) error {
	row := w.next
	if err := w.row(tag, cells); err != nil {
		return err
	}
	if err := w.f.SetRowStyle(w.sheet, row, row, w.bold); err != nil {
		return fmt.Errorf("styling %s row %d: %w", w.sheet, row, err)
	}
	return nil
}

func (w *sheetWriter) data(number int, rows [][]string) error {
	for _, r := range rows {
		if err := w.row(number, r); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) row(tag any, cells []string) error {
	values := make([]any, 0, len(cells)+1)
	values = append(values, tag)
	for _, c := range cells {
		values = append(values, c)
	}

	axis, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, axis, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", w.sheet, w.next, err)
	}
	w.next++
	return nil
}
