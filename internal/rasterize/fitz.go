// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rasterize

import (
	"context"
	"fmt"
	"image/png"
	"io"

	"github.com/gen2brain/go-fitz"
)

// fitzRenderer renders pages in-process with MuPDF.
type fitzRenderer struct {
	doc *fitz.Document
}

// OpenFitz opens pdfPath with MuPDF. It is the default Opener.
func OpenFitz(pdfPath string) (Renderer, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("mupdf: %w", err)
	}
	return &fitzRenderer{doc: doc}, nil
}

func (f *fitzRenderer) PageCount() int { return f.doc.NumPage() }

func (f *fitzRenderer) RenderPNG(_ context.Context, page int, dpi float64, w io.Writer) error {
	img, err := f.doc.ImageDPI(page-1, dpi)
	if err != nil {
		return fmt.Errorf("mupdf: %w", err)
	}
	return png.Encode(w, img)
}

func (f *fitzRenderer) Close() error { return f.doc.Close() }
