package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter writes a sheet as two CSV sections separated by a blank record.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV bytes for the sheet.
func (e *CSVExporter) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Grades) == 0 {
		return nil, fmt.Errorf("grade sheet has no grades")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	sections := []struct {
		headers []string
		rows    [][]string
	}{
		{gradeHeaders, gradeRows(sheet)},
		{standingHeaders, standingRows(sheet)},
	}
	for i, section := range sections {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return nil, fmt.Errorf("write csv separator: %w", err)
			}
		}
		if err := writer.Write(section.headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		if err := writer.WriteAll(section.rows); err != nil {
			return nil, fmt.Errorf("write csv rows: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
