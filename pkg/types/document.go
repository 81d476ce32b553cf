// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"time"
)

var (
	// ErrInputNotFound reports that the source document does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrNoTables reports that a document contains no non-empty tables.
	ErrNoTables = errors.New("no tables found in document")
)

// PageImage is one rendered PDF page written to disk.
type PageImage struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`

	// Path is the PNG file the page was written to.
	Path string `json:"path" yaml:"path"`
}

// ExtractedTable is a table read from a document, padded so that the header
// and every row have the same number of cells.
type ExtractedTable struct {
	// Number is the 1-based position of the table among all tables of the
	// source document, empty ones included.
	Number int `json:"number" yaml:"number"`

	// Header holds the first row's cell text.
	Header []string `json:"header" yaml:"header"`

	// Rows holds the remaining rows.
	Rows [][]string `json:"rows" yaml:"rows"`
}

// Width returns the column count shared by the header and all rows.
func (t ExtractedTable) Width() int {
	return len(t.Header)
}

// ConversionKind identifies which converter handles a job.
type ConversionKind string

const (
	KindPDFImages  ConversionKind = "pdf-images"
	KindDOCXTables ConversionKind = "docx-tables"
)

// Valid reports whether k names a known converter.
func (k ConversionKind) Valid() bool {
	return k == KindPDFImages || k == KindDOCXTables
}

// RunStatus is the outcome of a single conversion.
type RunStatus string

const (
	RunConverted RunStatus = "converted"
	RunFailed    RunStatus = "failed"
)

// RunRecord is one conversion as stored in the history database.
type RunRecord struct {
	ID        int64          `json:"id" yaml:"id"`
	Kind      ConversionKind `json:"kind" yaml:"kind"`
	Input     string         `json:"input" yaml:"input"`
	Output    string         `json:"output" yaml:"output"`
	Items     int            `json:"items" yaml:"items"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	Status    RunStatus      `json:"status" yaml:"status"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
}
