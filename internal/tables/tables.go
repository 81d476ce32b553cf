// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tables extracts the tables of a DOCX document as padded rows of
// cell text.
//
// Tables are read from the document body in order and numbered from 1.
// Tables without rows are skipped but keep their number, so the numbers of
// the returned tables may have gaps. The first row of each table is its
// header; every row is padded with empty strings to the width of the
// table's widest row.
package tables

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/docconv/internal/fsutil"
	"github.com/pdiddy/docconv/pkg/types"
)

const workbookSuffix = "_tables.xlsx"

// DefaultOutputPath returns the <stem>_tables.xlsx path next to docxPath.
func DefaultOutputPath(docxPath string) string {
	return fsutil.Sibling(docxPath, workbookSuffix)
}

// Extract reads every table of the DOCX at docxPath. A missing file fails
// with types.ErrInputNotFound; a document without any non-empty table fails
// with types.ErrNoTables.
func Extract(docxPath string, log logrus.FieldLogger) ([]types.ExtractedTable, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	src, err := fsutil.RequireFile(docxPath)
	if err != nil {
		return nil, err
	}

	doc, err := readDocument(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}

	var out []types.ExtractedTable
	for i, tbl := range doc.Body.Tables {
		number := i + 1
		rows := tbl.gridRows()
		if len(rows) == 0 {
			log.WithField("table", number).Debug("skipping table without rows")
			continue
		}
		out = append(out, Normalize(number, trimCells(rows)))
	}

	log.WithFields(logrus.Fields{
		"docx":      src,
		"found":     len(doc.Body.Tables),
		"extracted": len(out),
	}).Debug("tables extracted")

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrNoTables, docxPath)
	}
	return out, nil
}

// Normalize pads rows to the widest row and splits off the first row as the
// header. rows must not be empty.
func Normalize(number int, rows [][]string) types.ExtractedTable {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	padded := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, width)
		copy(row, r)
		padded[i] = row
	}

	return types.ExtractedTable{
		Number: number,
		Header: padded[0],
		Rows:   padded[1:],
	}
}

func trimCells(rows [][]string) [][]string {
	for _, r := range rows {
		for j, cell := range r {
			r[j] = strings.TrimSpace(cell)
		}
	}
	return rows
}
