// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs PDF-to-images and DOCX-tables-to-workbook
// conversions, singly or as a batch described by a job file, and records
// each run in the optional history store.
package convert

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/docconv/internal/fsutil"
	"github.com/pdiddy/docconv/internal/rasterize"
	"github.com/pdiddy/docconv/internal/tables"
	"github.com/pdiddy/docconv/internal/workbook"
	"github.com/pdiddy/docconv/pkg/types"
)

// Recorder persists conversion runs. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.RunRecord) (int64, error)
}

// Service performs conversions with a fixed renderer and settings.
type Service struct {
	open    rasterize.Opener
	cfg     types.Config
	log     logrus.FieldLogger
	history Recorder
	now     func() time.Time
}

// NewService builds a Service. history may be nil to disable recording.
func NewService(open rasterize.Opener, cfg types.Config, log logrus.FieldLogger, history Recorder) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		open:    open,
		cfg:     cfg,
		log:     log,
		history: history,
		now:     time.Now,
	}
}

// PDFToImages renders pdfPath to PNG files. Empty outDir and non-positive
// dpi fall back to the configured values, then to the package defaults.
func (s *Service) PDFToImages(ctx context.Context, pdfPath, outDir string, dpi int) ([]types.PageImage, error) {
	if outDir == "" {
		outDir = s.cfg.PDF.OutputDir
	}
	if dpi <= 0 {
		dpi = s.cfg.PDF.DPI
	}

	start := s.now()
	pages, err := rasterize.ConvertPDF(ctx, s.open, pdfPath, rasterize.Options{
		OutputDir: outDir,
		DPI:       dpi,
		Logger:    s.log,
	})

	out := outDir
	if out == "" {
		out = rasterize.DefaultOutputDir(pdfPath)
	}
	s.record(ctx, types.KindPDFImages, pdfPath, out, len(pages), start, err)
	return pages, err
}

// TablesToWorkbook extracts the tables of docxPath into a workbook and
// returns the workbook path. An empty output falls back to the configured
// path, then to <stem>_tables.xlsx next to the document.
func (s *Service) TablesToWorkbook(ctx context.Context, docxPath, output string) (string, error) {
	start := s.now()
	path, n, err := s.tablesToWorkbook(docxPath, output)
	s.record(ctx, types.KindDOCXTables, docxPath, path, n, start, err)
	return path, err
}

func (s *Service) tablesToWorkbook(docxPath, output string) (string, int, error) {
	extracted, err := tables.Extract(docxPath, s.log)
	if err != nil {
		return "", 0, err
	}

	if output == "" {
		output = s.cfg.Tables.OutputPath
	}
	if output == "" {
		src, err := fsutil.Resolve(docxPath)
		if err != nil {
			return "", 0, err
		}
		output = tables.DefaultOutputPath(src)
	} else if output, err = fsutil.Resolve(output); err != nil {
		return "", 0, err
	}

	opts := workbook.Options{IndexColumn: s.cfg.Tables.IndexColumn}
	if err := workbook.Write(output, extracted, opts); err != nil {
		return "", 0, err
	}

	s.log.WithFields(logrus.Fields{
		"docx":   docxPath,
		"tables": len(extracted),
		"output": output,
	}).Info("workbook written")
	return output, len(extracted), nil
}

func (s *Service) record(ctx context.Context, kind types.ConversionKind, input, output string, items int, start time.Time, err error) {
	if s.history == nil {
		return
	}
	rec := types.RunRecord{
		Kind:      kind,
		Input:     input,
		Output:    output,
		Items:     items,
		StartedAt: start,
		Duration:  s.now().Sub(start),
		Status:    types.RunConverted,
	}
	if err != nil {
		rec.Status = types.RunFailed
		rec.Error = err.Error()
	}
	if _, herr := s.history.Record(ctx, rec); herr != nil {
		s.log.WithError(herr).Warn("could not record conversion history")
	}
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the number of jobs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any job failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// RunJob performs one job and prints its status line to w.
func (s *Service) RunJob(ctx context.Context, job Job, w io.Writer) types.RunStatus {
	var (
		summary string
		err     error
	)
	switch job.Kind {
	case types.KindPDFImages:
		var pages []types.PageImage
		pages, err = s.PDFToImages(ctx, job.Input, job.Output, job.DPI)
		summary = fmt.Sprintf("%d page(s)", len(pages))
	case types.KindDOCXTables:
		var path string
		path, err = s.TablesToWorkbook(ctx, job.Input, job.Output)
		summary = path
	default:
		err = fmt.Errorf("unknown job kind %q", job.Kind)
	}

	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", job.Input, err)
		return types.RunFailed
	}
	fmt.Fprintf(w, "converted: %s -> %s\n", job.Input, summary)
	return types.RunConverted
}

// RunBatch processes jobs in order, printing per-job status to w and
// returning a summary. A failing job does not stop the batch.
func (s *Service) RunBatch(ctx context.Context, jobs []Job, w io.Writer) BatchResult {
	var result BatchResult
	for _, job := range jobs {
		switch s.RunJob(ctx, job, w) {
		case types.RunConverted:
			result.Converted++
		case types.RunFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}
