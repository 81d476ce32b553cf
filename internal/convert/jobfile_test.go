// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docconv/pkg/types"
)

func TestLoadJobFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "jobs.yaml"), `
jobs:
  - kind: pdf-images
    input: in/report.pdf
    dpi: 150
  - kind: docx-tables
    input: /abs/survey.docx
    output: out/survey.xlsx
`)

	jobs, err := LoadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Job{
		{Kind: types.KindPDFImages, Input: filepath.Join(dir, "in", "report.pdf"), DPI: 150},
		{Kind: types.KindDOCXTables, Input: "/abs/survey.docx", Output: filepath.Join(dir, "out", "survey.xlsx")},
	}, jobs)
}

func TestLoadJobFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"empty", "jobs: []\n", "lists no jobs"},
		{"unknown kind", "jobs:\n  - kind: pptx\n    input: a.pptx\n", `unknown kind "pptx"`},
		{"missing input", "jobs:\n  - kind: pdf-images\n", "input is required"},
		{"negative dpi", "jobs:\n  - kind: pdf-images\n    input: a.pdf\n    dpi: -1\n", "dpi must be positive"},
		{"not yaml", "jobs: [\n", "parsing job file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), "jobs.yaml"), tt.content)
			_, err := LoadJobFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadJobFile_Missing(t *testing.T) {
	_, err := LoadJobFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading job file")
}

func TestJobsForPaths(t *testing.T) {
	jobs, err := JobsForPaths([]string{"a.pdf", "b.DOCX"})
	require.NoError(t, err)
	assert.Equal(t, []Job{
		{Kind: types.KindPDFImages, Input: "a.pdf"},
		{Kind: types.KindDOCXTables, Input: "b.DOCX"},
	}, jobs)

	_, err = JobsForPaths([]string{"notes.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestWriteJobFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")
	jobs := []Job{
		{Kind: types.KindPDFImages, Input: filepath.Join(dir, "a.pdf"), DPI: 72},
		{Kind: types.KindDOCXTables, Input: filepath.Join(dir, "b.docx")},
	}
	require.NoError(t, WriteJobFile(path, jobs))

	got, err := LoadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, jobs, got)
}

func TestWriteJobFile_RelativeInputsFromOtherDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "docs", "a.pdf"), "%PDF")

	jobs, err := JobsForPaths([]string{"docs/a.pdf"})
	require.NoError(t, err)
	jobs[0].Output = "out/a_pages"
	require.NoError(t, WriteJobFile("plans/nested/jobs.yaml", jobs))

	got, err := LoadJobFile(filepath.Join(dir, "plans", "nested", "jobs.yaml"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "docs", "a.pdf"), got[0].Input)
	assert.Equal(t, filepath.Join(dir, "out", "a_pages"), got[0].Output)
	assert.FileExists(t, got[0].Input)
}
