// Package scalefile loads grade tables from YAML and reloads them when the file changes.
package scalefile

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/cgpa-api/internal/gpa"
)

// Scale is one named grade table as written in the file.
type Scale struct {
	Code    string           `yaml:"code"`
	Name    string           `yaml:"name"`
	Entries []gpa.GradeEntry `yaml:"entries"`
}

// File is the document layout.
type File struct {
	Scales []Scale `yaml:"scales"`
}

// Table is a validated scale ready for lookups.
type Table struct {
	Code  string
	Name  string
	Table *gpa.GradeTable
}

// Load reads and validates the scales declared in path.
func Load(path string) ([]Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scale file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML document. Unknown fields are rejected so typos surface early.
func Parse(raw []byte) ([]Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc File
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode scale file: %w", err)
	}
	if len(doc.Scales) == 0 {
		return nil, fmt.Errorf("scale file declares no scales")
	}

	seen := make(map[string]struct{}, len(doc.Scales))
	tables := make([]Table, 0, len(doc.Scales))
	for _, scale := range doc.Scales {
		code := strings.ToUpper(strings.TrimSpace(scale.Code))
		if code == "" {
			return nil, fmt.Errorf("scale %q has no code", scale.Name)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("duplicate scale code %s", code)
		}
		seen[code] = struct{}{}

		table, err := gpa.NewGradeTable(scale.Entries)
		if err != nil {
			return nil, fmt.Errorf("scale %s: %w", code, err)
		}
		name := scale.Name
		if name == "" {
			name = code
		}
		tables = append(tables, Table{Code: code, Name: name, Table: table})
	}
	return tables, nil
}
