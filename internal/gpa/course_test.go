package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCourseIsIncomplete(t *testing.T) {
	c := NewCourse()

	assert.NotEmpty(t, c.ID)
	assert.Empty(t, c.Name)
	assert.Empty(t, c.Grade())
	assert.Zero(t, c.Credits())
	assert.Zero(t, c.GradePoint())
	assert.False(t, c.Complete())
}

func TestSetGradeDerivesGradePoint(t *testing.T) {
	table := DefaultGradeTable()
	c := NewCourse()

	c.SetGrade(table, "A")
	assert.Equal(t, "A", c.Grade())
	assert.Equal(t, 8.0, c.GradePoint())

	c.SetGrade(table, "X")
	assert.Equal(t, "X", c.Grade())
	assert.Zero(t, c.GradePoint())

	c.SetGrade(table, "")
	assert.Empty(t, c.Grade())
	assert.Zero(t, c.GradePoint())
}

func TestSetCreditsCoercesNegative(t *testing.T) {
	c := NewCourse()

	c.SetCredits(25)
	assert.Equal(t, 25, c.Credits())

	c.SetCredits(-4)
	assert.Zero(t, c.Credits())

	c.SetCredits(MaxCredits)
	assert.Equal(t, MaxCredits, c.Credits())

	c.SetCredits(MaxCredits + 1)
	assert.Zero(t, c.Credits())
}

func TestParseCredits(t *testing.T) {
	cases := map[string]int{
		"4":      4,
		" 3 ":    3,
		"3.7":    3,
		"12abc":  12,
		"abc":    0,
		"":       0,
		"-2":     0,
		"-2.5":   0,
		"+6":     6,
		"NaN":    0,
		"1e99":   1,
		"1e3":    1,
		"0":      0,
		"15":     15,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseCredits(raw), "input %q", raw)
	}
}

func TestParseCreditsUpperBound(t *testing.T) {
	assert.Equal(t, MaxCredits, ParseCredits("2147483647"))
	assert.Zero(t, ParseCredits("2147483648"))
	assert.Zero(t, ParseCredits("99999999999"))
	assert.Zero(t, ParseCredits("3000000000.5"))
	assert.Zero(t, ParseCredits("99999999999999999999999"))
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
