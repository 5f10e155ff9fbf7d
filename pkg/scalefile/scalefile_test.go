package scalefile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const ritScales = `
scales:
  - code: rit
    name: RIT 2025
    entries:
      - {symbol: O, points: 10, description: Outstanding}
      - {symbol: A+, points: 9, description: Excellent}
      - {symbol: U, points: 0, description: Fail}
  - code: PASSFAIL
    entries:
      - {symbol: P, points: 10}
      - {symbol: F, points: 0}
`

func TestParse(t *testing.T) {
	tables, err := Parse([]byte(ritScales))
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, "RIT", tables[0].Code)
	assert.Equal(t, "RIT 2025", tables[0].Name)
	assert.Equal(t, []string{"O", "A+", "U"}, tables[0].Table.Symbols())
	assert.Equal(t, 9.0, tables[0].Table.Lookup("A+"))
	assert.Equal(t, "PASSFAIL", tables[1].Name)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":          "scales: []",
		"missing code":   "scales:\n  - entries: [{symbol: A, points: 4}]",
		"duplicate code": "scales:\n  - code: a\n    entries: [{symbol: A, points: 4}]\n  - code: A\n    entries: [{symbol: B, points: 3}]",
		"duplicate sym":  "scales:\n  - code: a\n    entries: [{symbol: A, points: 4}, {symbol: A, points: 3}]",
		"unknown field":  "scales:\n  - code: a\n    weight: 3\n    entries: [{symbol: A, points: 4}]",
		"not yaml":       "scales: [",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ritScales), 0o600))

	reloaded := make(chan []Table, 4)
	w, err := NewWatcher(path, func(tables []Table) { reloaded <- tables }, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	w.Start()
	defer w.Stop()

	updated := "scales:\n  - code: NEW\n    entries: [{symbol: X, points: 7}]\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case tables := <-reloaded:
		require.Len(t, tables, 1)
		assert.Equal(t, "NEW", tables[0].Code)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload scale file")
	}
}
