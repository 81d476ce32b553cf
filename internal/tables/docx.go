// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tables

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const documentPart = "word/document.xml"

// documentXML is word/document.xml reduced to what table extraction needs.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML collects the body-level tables in document order. Tables nested in
// cells, content controls, headers and footers are not part of the body.
type bodyXML struct {
	Tables []tableXML `xml:"tbl"`
}

type tableXML struct {
	Rows []rowXML `xml:"tr"`
}

type rowXML struct {
	Cells []cellXML `xml:"tc"`
}

type cellXML struct {
	Properties cellPropsXML   `xml:"tcPr"`
	Paragraphs []paragraphXML `xml:"p"`
}

type cellPropsXML struct {
	GridSpan valXML  `xml:"gridSpan"`
	VMerge   *valXML `xml:"vMerge"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

// span returns the number of grid columns the cell covers.
func (c cellXML) span() int {
	if n, err := strconv.Atoi(c.Properties.GridSpan.Val); err == nil && n > 1 {
		return n
	}
	return 1
}

// continuesMerge reports whether the cell continues a vertical merge started
// in a row above. <w:vMerge/> without val, or val="continue", continues.
func (c cellXML) continuesMerge() bool {
	vm := c.Properties.VMerge
	return vm != nil && vm.Val != "restart"
}

func (c cellXML) text() string {
	parts := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n")
}

// paragraphXML holds the visible text of a <w:p>: text runs, tabs, line
// breaks and non-breaking hyphens in reading order. Properties, drawings, text boxes and deleted runs are
// skipped.
type paragraphXML struct {
	Text string
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	inText := false
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "ptab":
				b.WriteByte('\t')
			case "br":
				if lineBreak(t) {
					b.WriteByte('\n')
				}
			case "cr":
				b.WriteByte('\n')
			case "noBreakHyphen":
				b.WriteByte('-')
			case "pPr", "rPr", "drawing", "pict", "AlternateContent", "del", "delText", "instrText":
				if err := d.Skip(); err != nil {
					return err
				}
				depth--
			}
		case xml.EndElement:
			if depth == 0 {
				p.Text = b.String()
				return nil
			}
			depth--
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}

// lineBreak reports whether a <w:br> ends a line of text. Page and column
// breaks carry no text.
func lineBreak(br xml.StartElement) bool {
	for _, a := range br.Attr {
		if a.Name.Local == "type" {
			return a.Value == "textWrapping"
		}
	}
	return true
}

// readDocument opens the DOCX package at path and decodes its main part.
func readDocument(path string) (*documentXML, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening DOCX archive: %w", err)
	}
	defer zr.Close()

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("not a DOCX package: missing %s", documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", documentPart, err)
	}
	defer rc.Close()

	return decodeDocument(rc)
}

func decodeDocument(r io.Reader) (*documentXML, error) {
	var doc documentXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	return &doc, nil
}

// gridRows expands a table into rows of cell text laid out on the table
// grid: a cell spanning n columns appears n times and a vertically merged
// continuation repeats the text of the cell that started the merge.
func (t tableXML) gridRows() [][]string {
	rows := make([][]string, 0, len(t.Rows))
	var above []string
	for _, r := range t.Rows {
		var row []string
		for _, c := range r.Cells {
			col := len(row)
			text := c.text()
			if c.continuesMerge() && col < len(above) {
				text = above[col]
			}
			for i := 0; i < c.span(); i++ {
				row = append(row, text)
			}
		}
		rows = append(rows, row)
		above = row
	}
	return rows
}
