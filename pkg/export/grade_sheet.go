// Package export renders the grade reference sheet as CSV or PDF.
package export

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/cgpa-api/internal/gpa"
)

// Sheet is the printable reference for one grade scale: the symbol table and the standing ladder.
type Sheet struct {
	Title     string
	ScaleCode string
	ScaleName string
	Grades    []gpa.GradeEntry
	Standings []gpa.StandingRange
}

// NewSheet builds a sheet from a grade table and the standard classification ladder.
func NewSheet(title, code, name string, table *gpa.GradeTable) Sheet {
	return Sheet{
		Title:     title,
		ScaleCode: code,
		ScaleName: name,
		Grades:    table.Entries(),
		Standings: gpa.StandingRanges(),
	}
}

var (
	gradeHeaders    = []string{"Grade", "Points", "Description"}
	standingHeaders = []string{"Minimum GPA", "Standing"}
)

func gradeRows(s Sheet) [][]string {
	rows := make([][]string, 0, len(s.Grades))
	for _, g := range s.Grades {
		rows = append(rows, []string{g.Symbol, strconv.FormatFloat(g.Points, 'f', -1, 64), g.Description})
	}
	return rows
}

func standingRows(s Sheet) [][]string {
	rows := make([][]string, 0, len(s.Standings))
	for _, r := range s.Standings {
		rows = append(rows, []string{fmt.Sprintf("%.1f", r.Min), r.Standing.Label})
	}
	return rows
}
