package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGradeTableLookup(t *testing.T) {
	table := DefaultGradeTable()

	assert.Equal(t, []string{"O", "A+", "A", "B+", "B", "C", "U"}, table.Symbols())
	assert.Equal(t, 10.0, table.Lookup("O"))
	assert.Equal(t, 9.0, table.Lookup("A+"))
	assert.Equal(t, 7.0, table.Lookup("B+"))
	assert.Equal(t, 0.0, table.Lookup("U"))
	assert.Equal(t, 0.0, table.Lookup(""))
	assert.Equal(t, 0.0, table.Lookup("a+"))
	assert.True(t, table.Has("U"))
	assert.False(t, table.Has("F"))
}

func TestNewGradeTableRejectsInvalidEntries(t *testing.T) {
	_, err := NewGradeTable(nil)
	assert.Error(t, err)

	_, err = NewGradeTable([]GradeEntry{{Symbol: "A", Points: 4}, {Symbol: "A", Points: 3}})
	assert.Error(t, err)

	_, err = NewGradeTable([]GradeEntry{{Symbol: " ", Points: 4}})
	assert.Error(t, err)

	_, err = NewGradeTable([]GradeEntry{{Symbol: "X", Points: 11}})
	assert.Error(t, err)
}

func TestCustomGradeTableKeepsOrder(t *testing.T) {
	table, err := NewGradeTable([]GradeEntry{{Symbol: "P", Points: 4}, {Symbol: "F", Points: 0}, {Symbol: "D", Points: 6}})
	require.NoError(t, err)

	assert.Equal(t, []string{"P", "F", "D"}, table.Symbols())
	assert.Equal(t, 6.0, table.Lookup("D"))

	entries := table.Entries()
	entries[0].Points = 9
	assert.Equal(t, 4.0, table.Lookup("P"))
}

func TestNilGradeTableIsSafe(t *testing.T) {
	var table *GradeTable
	assert.Equal(t, 0.0, table.Lookup("O"))
	assert.False(t, table.Has("O"))
	assert.Nil(t, table.Entries())
}
