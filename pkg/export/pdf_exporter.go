package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders tables and week grids into PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Table, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WeekGrid is a timetable laid out as slot rows against day columns. Cells
// hold the rendered session text, keyed by day then slot label.
type WeekGrid struct {
	Title      string
	Days       []string
	SlotLabels []string
	Cells      map[string]map[string]string
}

// RenderWeekGrid draws a landscape week-view timetable, one column per day
// and one row per slot.
func (e *PDFExporter) RenderWeekGrid(grid WeekGrid) ([]byte, error) {
	if len(grid.Days) == 0 || len(grid.SlotLabels) == 0 {
		return nil, fmt.Errorf("week grid requires days and slots")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	if grid.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(grid.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	const labelWidth = 32.0
	colWidth := (277.0 - labelWidth) / float64(len(grid.Days))

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(labelWidth, 8, "Time", "1", 0, "C", false, 0, "")
	for _, day := range grid.Days {
		pdf.CellFormat(colWidth, 8, day, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, label := range grid.SlotLabels {
		pdf.CellFormat(labelWidth, 10, label, "1", 0, "C", false, 0, "")
		for _, day := range grid.Days {
			var value string
			if byDay, ok := grid.Cells[day]; ok {
				value = byDay[label]
			}
			pdf.CellFormat(colWidth, 10, value, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render week grid pdf: %w", err)
	}
	return buf.Bytes(), nil
}
