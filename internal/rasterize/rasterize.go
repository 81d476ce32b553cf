// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rasterize renders every page of a PDF to a PNG file.
//
// Rendering is delegated to a Renderer; MuPDF (go-fitz) and poppler
// (pdftoppm) backends are provided. Pages are written as page_NN.png, 1-based
// and zero-padded to two digits. Documents beyond 99 pages get wider names
// (page_100.png) whose lexical order no longer matches page order.
package rasterize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/docconv/internal/fsutil"
	"github.com/pdiddy/docconv/pkg/types"
)

const pagesSuffix = "_pages"

// Renderer draws the pages of one open PDF document.
type Renderer interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// RenderPNG rasterizes the 1-based page at dpi and writes PNG data to w.
	RenderPNG(ctx context.Context, page int, dpi float64, w io.Writer) error

	// Close releases the document.
	Close() error
}

// Opener opens the PDF at path for rendering.
type Opener func(path string) (Renderer, error)

// Options controls a single PDF conversion.
type Options struct {
	// OutputDir receives the PNG files. Empty means <pdf dir>/<stem>_pages.
	OutputDir string

	// DPI is the rendering resolution. Zero or negative means types.DefaultDPI.
	DPI int

	Logger logrus.FieldLogger
}

// DefaultOutputDir returns the <stem>_pages directory next to pdfPath.
func DefaultOutputDir(pdfPath string) string {
	return fsutil.Sibling(pdfPath, pagesSuffix)
}

// PageFileName returns the file name for the 1-based page number.
func PageFileName(page int) string {
	return fmt.Sprintf("page_%02d.png", page)
}

// ConvertPDF renders every page of the PDF at pdfPath into opts.OutputDir
// and returns the written files in page order.
//
// A missing input fails with types.ErrInputNotFound before anything is
// created. If rendering fails part-way the pages already written are kept
// on disk and returned alongside the error. Existing files are overwritten.
func ConvertPDF(ctx context.Context, open Opener, pdfPath string, opts Options) ([]types.PageImage, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	src, err := fsutil.RequireFile(pdfPath)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir(src)
	} else if outDir, err = fsutil.Resolve(outDir); err != nil {
		return nil, err
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = types.DefaultDPI
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	doc, err := open(src)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", src, err)
	}
	defer doc.Close()

	n := doc.PageCount()
	log.WithFields(logrus.Fields{
		"pdf":    src,
		"pages":  n,
		"dpi":    dpi,
		"output": outDir,
	}).Debug("rendering PDF")

	pages := make([]types.PageImage, 0, n)
	for page := 1; page <= n; page++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		path := filepath.Join(outDir, PageFileName(page))
		if err := writePage(ctx, doc, page, float64(dpi), path); err != nil {
			return pages, err
		}
		pages = append(pages, types.PageImage{Page: page, Path: path})
		log.WithField("path", path).Debug("page written")
	}

	return pages, nil
}

// writePage renders one page into memory, then writes it to path.
func writePage(ctx context.Context, doc Renderer, page int, dpi float64, path string) error {
	var buf bytes.Buffer
	if err := doc.RenderPNG(ctx, page, dpi, &buf); err != nil {
		return fmt.Errorf("rendering page %d: %w", page, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing page %d: %w", page, err)
	}
	return nil
}
