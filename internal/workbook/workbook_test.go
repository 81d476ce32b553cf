// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workbook

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/docconv/pkg/types"
)

func sampleTables() []types.ExtractedTable {
	return []types.ExtractedTable{
		{
			Number: 1,
			Header: []string{"Tool", "Phase"},
			Rows:   [][]string{{"Copilot", "Coding"}, {"Sonar", "Review"}},
		},
		{
			Number: 3,
			Header: []string{"A", "B", "C"},
			Rows:   [][]string{{"x", "", "z"}},
		},
	}
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report_tables.xlsx")
	require.NoError(t, Write(path, sampleTables(), Options{}))

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Table_1", "Table_2", AllTablesSheet}, f.GetSheetList())

	rows, err := f.GetRows("Table_1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"table_no", "Tool", "Phase"},
		{"1", "Copilot", "Coding"},
		{"1", "Sonar", "Review"},
	}, rows)

	rows, err = f.GetRows("Table_2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"table_no", "A", "B", "C"},
		{"3", "x", "", "z"},
	}, rows)

	rows, err = f.GetRows(AllTablesSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"1", "Tool", "Phase"},
		{"1", "Copilot", "Coding"},
		{"1", "Sonar", "Review"},
		{"3", "A", "B", "C"},
		{"3", "x", "", "z"},
	}, rows)
}

func TestWrite_AllTablesRowCountMatchesSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.xlsx")
	tables := sampleTables()
	require.NoError(t, Write(path, tables, Options{}))

	f := openWorkbook(t, path)
	sum := 0
	for i := range tables {
		rows, err := f.GetRows(SheetName(i + 1))
		require.NoError(t, err)
		sum += len(rows)
	}
	all, err := f.GetRows(AllTablesSheet)
	require.NoError(t, err)
	assert.Equal(t, sum, len(all))
	assert.Len(t, f.GetSheetList(), len(tables)+1)
}

func TestWrite_IndexColumnAndHeaderStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.xlsx")
	require.NoError(t, Write(path, sampleTables()[:1], Options{IndexColumn: "表序号"}))

	f := openWorkbook(t, path)
	v, err := f.GetCellValue("Table_1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "表序号", v)

	headerStyle, err := f.GetCellStyle("Table_1", "B1")
	require.NoError(t, err)
	dataStyle, err := f.GetCellStyle("Table_1", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, dataStyle, headerStyle)
}

func TestWrite_NoTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.xlsx")
	err := Write(path, nil, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNoTables))
	assert.NoFileExists(t, path)
}

func TestWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.xlsx")
	require.NoError(t, Write(path, sampleTables(), Options{}))
	require.NoError(t, Write(path, sampleTables()[:1], Options{}))

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Table_1", AllTablesSheet}, f.GetSheetList())
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Table_1", SheetName(1))
	assert.Equal(t, "Table_12", SheetName(12))
}
