package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/cgpa-api/internal/gpa"
)

// PDFExporter renders a sheet as a single A4 page.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

var bandColors = map[gpa.Band][3]int{
	gpa.BandSuccess:     {198, 239, 206},
	gpa.BandPrimary:     {198, 219, 252},
	gpa.BandWarning:     {255, 235, 156},
	gpa.BandAccent:      {226, 212, 247},
	gpa.BandMuted:       {230, 230, 230},
	gpa.BandDestructive: {255, 199, 206},
}

// Render creates the PDF document.
func (e *PDFExporter) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Grades) == 0 {
		return nil, fmt.Errorf("grade sheet has no grades")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if sheet.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(sheet.Title), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", sheet.ScaleName, sheet.ScaleCode), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	table(pdf, gradeHeaders, gradeRows(sheet), nil)
	pdf.Ln(8)

	fills := make([][3]int, 0, len(sheet.Standings))
	for _, r := range sheet.Standings {
		fills = append(fills, bandColors[r.Standing.Band])
	}
	table(pdf, standingHeaders, standingRows(sheet), fills)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func table(pdf *gofpdf.Fpdf, headers []string, rows [][]string, fills [][3]int) {
	colWidth := 190.0 / float64(len(headers))
	pdf.SetFont("Arial", "B", 10)
	for _, header := range headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, row := range rows {
		fill := i < len(fills)
		if fill {
			pdf.SetFillColor(fills[i][0], fills[i][1], fills[i][2])
		}
		for _, value := range row {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}
