// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docconv/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	id1, err := s.Record(ctx, types.RunRecord{
		Kind:      types.KindPDFImages,
		Input:     "/docs/report.pdf",
		Output:    "/docs/report_pages",
		Items:     12,
		StartedAt: start,
		Duration:  1500 * time.Millisecond,
		Status:    types.RunConverted,
	})
	require.NoError(t, err)

	id2, err := s.Record(ctx, types.RunRecord{
		Kind:      types.KindDOCXTables,
		Input:     "/docs/empty.docx",
		StartedAt: start.Add(time.Minute),
		Status:    types.RunFailed,
		Error:     "no tables found in document",
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, id2, runs[0].ID)
	assert.Equal(t, types.KindDOCXTables, runs[0].Kind)
	assert.Equal(t, types.RunFailed, runs[0].Status)
	assert.Equal(t, "no tables found in document", runs[0].Error)
	assert.Empty(t, runs[0].Output)

	assert.Equal(t, types.RunRecord{
		ID:        id1,
		Kind:      types.KindPDFImages,
		Input:     "/docs/report.pdf",
		Output:    "/docs/report_pages",
		Items:     12,
		StartedAt: start,
		Duration:  1500 * time.Millisecond,
		Status:    types.RunConverted,
	}, runs[1])
}

func TestListLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, types.RunRecord{
			Kind:      types.KindPDFImages,
			Input:     "a.pdf",
			StartedAt: time.Now(),
			Status:    types.RunConverted,
		})
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(ctx, types.RunRecord{Kind: types.KindPDFImages, Input: "a.pdf", StartedAt: time.Now(), Status: types.RunConverted})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
