package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docconv/internal/convert"
	"github.com/pdiddy/docconv/pkg/types"
)

func TestNewOpener_UnknownBackend(t *testing.T) {
	_, err := newOpener(types.RasterConfig{Backend: "ghostscript"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown PDF backend "ghostscript"`)
}

func TestNewOpener_Fitz(t *testing.T) {
	open, err := newOpener(types.RasterConfig{Backend: types.BackendFitz})
	require.NoError(t, err)
	assert.NotNil(t, open)
}

func TestNewOpener_PopplerMissingInputReportedFirst(t *testing.T) {
	// No pdftoppm, docker or podman can be found.
	t.Setenv("PATH", t.TempDir())

	open, err := newOpener(types.RasterConfig{Backend: types.BackendPoppler})
	require.NoError(t, err)

	dir := t.TempDir()
	svc := convert.NewService(open, types.Config{}, logger, nil)
	_, err = svc.PDFToImages(context.Background(), filepath.Join(dir, "absent.pdf"), "", 0)
	require.ErrorIs(t, err, types.ErrInputNotFound)

	pdfPath := filepath.Join(dir, "present.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.7"), 0o644))
	_, err = svc.PDFToImages(context.Background(), pdfPath, "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm not on PATH")
}
