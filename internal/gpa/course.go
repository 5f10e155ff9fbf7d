package gpa

import (
	"math"
	"strconv"
	"strings"
)

// Course is a single course record owned by a semester.
// The grade point is derived from the grade and cannot be set directly.
type Course struct {
	ID   string
	Name string

	credits    int
	grade      string
	gradePoint float64
}

// NewCourse returns an empty course: no name, no grade, zero credits.
func NewCourse() Course {
	return Course{ID: NewID()}
}

// Credits returns the stored credit load.
func (c Course) Credits() int { return c.credits }

// Grade returns the selected grade symbol, empty when none is selected.
func (c Course) Grade() string { return c.grade }

// GradePoint returns the points resolved for the current grade.
func (c Course) GradePoint() float64 { return c.gradePoint }

// Complete reports whether the course contributes to GPA aggregates.
func (c Course) Complete() bool {
	return c.credits > 0 && c.grade != ""
}

// SetGrade selects a grade and re-derives the grade point from table.
func (c *Course) SetGrade(table *GradeTable, symbol string) {
	c.grade = strings.TrimSpace(symbol)
	c.gradePoint = table.Lookup(c.grade)
}

// MaxCredits is the largest credit load a course accepts.
const MaxCredits = math.MaxInt32

// SetCredits stores n; negative values and values above MaxCredits are coerced to 0.
func (c *Course) SetCredits(n int) {
	c.credits = clampCredits(n)
}

// ParseCredits coerces free-form input into a credit count. Only the leading integer
// is read, so "3.7" is 3 and "1e3" is 1. Anything unparsable, negative or above
// MaxCredits becomes 0.
func ParseCredits(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) {
		ch := raw[end]
		if (ch == '-' || ch == '+') && end == 0 {
			end++
			continue
		}
		if ch < '0' || ch > '9' {
			break
		}
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return clampCredits(n)
}

func clampCredits(n int) int {
	if n < 0 || n > MaxCredits {
		return 0
	}
	return n
}
