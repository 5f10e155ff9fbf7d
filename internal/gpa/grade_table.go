package gpa

import (
	"fmt"
	"strings"
)

// GradeEntry maps a letter grade to its grade point value.
type GradeEntry struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Points      float64 `json:"points" yaml:"points"`
	Description string  `json:"description,omitempty" yaml:"description"`
}

// GradeTable is an ordered, immutable symbol -> points lookup.
type GradeTable struct {
	entries []GradeEntry
	index   map[string]int
}

// NewGradeTable builds a table preserving entry order. Symbols must be non-empty and unique.
func NewGradeTable(entries []GradeEntry) (*GradeTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("grade table requires at least one entry")
	}
	t := &GradeTable{
		entries: make([]GradeEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		symbol := strings.TrimSpace(entry.Symbol)
		if symbol == "" {
			return nil, fmt.Errorf("grade table entry has empty symbol")
		}
		if _, exists := t.index[symbol]; exists {
			return nil, fmt.Errorf("duplicate grade symbol %q", symbol)
		}
		if entry.Points < 0 || entry.Points > 10 {
			return nil, fmt.Errorf("grade %q points %.2f outside 0-10", symbol, entry.Points)
		}
		entry.Symbol = symbol
		t.index[symbol] = len(t.entries)
		t.entries = append(t.entries, entry)
	}
	return t, nil
}

// DefaultGradeTable returns the ten-point table: O=10, A+=9, A=8, B+=7, B=6, C=5, U=0.
func DefaultGradeTable() *GradeTable {
	t, err := NewGradeTable([]GradeEntry{
		{Symbol: "O", Points: 10, Description: "Outstanding"},
		{Symbol: "A+", Points: 9, Description: "Excellent"},
		{Symbol: "A", Points: 8, Description: "Very Good"},
		{Symbol: "B+", Points: 7, Description: "Good"},
		{Symbol: "B", Points: 6, Description: "Above Average"},
		{Symbol: "C", Points: 5, Description: "Average"},
		{Symbol: "U", Points: 0, Description: "Fail"},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the points for symbol. Unknown or empty symbols yield 0.
func (t *GradeTable) Lookup(symbol string) float64 {
	if t == nil {
		return 0
	}
	if i, ok := t.index[symbol]; ok {
		return t.entries[i].Points
	}
	return 0
}

// Has reports whether symbol is part of the table.
func (t *GradeTable) Has(symbol string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[symbol]
	return ok
}

// Entries returns a copy of the table in its defined order.
func (t *GradeTable) Entries() []GradeEntry {
	if t == nil {
		return nil
	}
	out := make([]GradeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Symbols lists the table symbols in order.
func (t *GradeTable) Symbols() []string {
	if t == nil {
		return nil
	}
	symbols := make([]string, 0, len(t.entries))
	for _, entry := range t.entries {
		symbols = append(symbols, entry.Symbol)
	}
	return symbols
}
